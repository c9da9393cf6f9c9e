package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserNamespace     = "user-storage"
	MaxRecentlyViewed = 10
)

var ErrNotAuthenticated = errors.New("not authenticated")

type AuthBackend interface {
	Signup(ctx context.Context, data models.SignupData) (models.AuthResponse, error)
	Login(ctx context.Context, data models.LoginData) (models.AuthResponse, error)
	Logout(ctx context.Context) error
	CheckEmail(ctx context.Context, email string) (bool, error)
	CurrentUser(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)
	ChangePassword(ctx context.Context, data models.ChangePasswordData) error

	Token() string
	SetToken(ctx context.Context, token string)
	ClearToken(ctx context.Context)
	RestoreToken(ctx context.Context) (string, error)
}

// AvatarUploader stores a profile image and returns its public URL.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (string, error)
}

type userSnapshot struct {
	User           *models.User `json:"user"`
	Wishlist       []string     `json:"wishlist"`
	RecentlyViewed []string     `json:"recentlyViewed"`
}

type UserStore struct {
	backend  AuthBackend
	uploader AvatarUploader
	persist  *persister
	log      *slog.Logger

	mu             sync.Mutex
	user           *models.User
	wishlist       []string
	recentlyViewed []string
}

func NewUserStore(backend AuthBackend, uploader AvatarUploader, s storage.Storage) *UserStore {
	log := logging.New("user-store")
	return &UserStore{
		backend:  backend,
		uploader: uploader,
		persist:  newPersister(s, UserNamespace, "user-store"),
		log:      log,
	}
}

func (u *UserStore) Restore(ctx context.Context) error {
	var snap userSnapshot
	ok, err := u.persist.load(ctx, &snap)
	if err != nil || !ok {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.user = snap.User
	u.wishlist = snap.Wishlist
	u.recentlyViewed = snap.RecentlyViewed
	if len(u.recentlyViewed) > MaxRecentlyViewed {
		u.recentlyViewed = u.recentlyViewed[:MaxRecentlyViewed]
	}
	return nil
}

// mutate runs fn under the lock and, when fn reports a change, persists the
// session after unlocking.
func (u *UserStore) mutate(fn func() bool) {
	var pending pendingWrite
	u.mu.Lock()
	if fn() {
		pending = u.persist.snapshot(userSnapshot{User: u.user, Wishlist: u.wishlist, RecentlyViewed: u.recentlyViewed})
	}
	u.mu.Unlock()
	pending.write()
}

func (u *UserStore) setUser(user *models.User) {
	u.mutate(func() bool {
		u.user = user
		return true
	})
}

func (u *UserStore) User() (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.user == nil {
		return models.User{}, false
	}
	return *u.user, true
}

func (u *UserStore) IsAuthenticated() bool {
	_, ok := u.User()
	return ok && u.backend.Token() != ""
}

func (u *UserStore) authenticate(ctx context.Context, res models.AuthResponse) models.User {
	u.backend.SetToken(ctx, res.Token)
	user := res.User()
	u.setUser(&user)
	return user
}

func (u *UserStore) Login(ctx context.Context, data models.LoginData) (models.User, error) {
	res, err := u.backend.Login(ctx, data)
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	return u.authenticate(ctx, res), nil
}

func (u *UserStore) Signup(ctx context.Context, data models.SignupData) (models.User, error) {
	res, err := u.backend.Signup(ctx, data)
	if err != nil {
		return models.User{}, fmt.Errorf("signup: %w", err)
	}
	return u.authenticate(ctx, res), nil
}

// Logout tells the backend and then always clears the local session, even
// when the backend call fails.
func (u *UserStore) Logout(ctx context.Context) {
	if err := u.backend.Logout(ctx); err != nil {
		u.log.Warn("backend logout failed", "error", err)
	}
	u.backend.ClearToken(ctx)

	u.mutate(func() bool {
		u.user = nil
		u.wishlist = nil
		u.recentlyViewed = nil
		return true
	})
}

// DropSession forgets the signed-in user without calling the backend. It
// runs when the backend rejects the held token.
func (u *UserStore) DropSession() {
	u.setUser(nil)
}

// LoadCurrentUser refreshes the session user from the backend.
func (u *UserStore) LoadCurrentUser(ctx context.Context) (models.User, error) {
	if u.backend.Token() == "" {
		u.setUser(nil)
		return models.User{}, ErrNotAuthenticated
	}
	user, err := u.backend.CurrentUser(ctx)
	if err != nil {
		u.setUser(nil)
		return models.User{}, fmt.Errorf("load current user: %w", err)
	}
	u.setUser(&user)
	return user, nil
}

// Initialize restores the persisted token and, unless it has expired,
// reloads the user it belongs to.
func (u *UserStore) Initialize(ctx context.Context) error {
	token, err := u.backend.RestoreToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if tokenExpired(token, time.Now()) {
		u.log.Info("dropping expired auth token")
		u.backend.ClearToken(ctx)
		u.setUser(nil)
		return nil
	}
	if _, err := u.LoadCurrentUser(ctx); err != nil {
		u.log.Warn("could not restore session", "error", err)
	}
	return nil
}

// tokenExpired reads the exp claim without verifying the signature; the
// backend remains the authority. Opaque tokens never count as expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

func (u *UserStore) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	user, err := u.backend.UpdateProfile(ctx, update)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	u.setUser(&user)
	return user, nil
}

func (u *UserStore) ChangePassword(ctx context.Context, data models.ChangePasswordData) error {
	if err := u.backend.ChangePassword(ctx, data); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (u *UserStore) CheckEmail(ctx context.Context, email string) (bool, error) {
	exists, err := u.backend.CheckEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// UploadAvatar stores the image and points the profile at it.
func (u *UserStore) UploadAvatar(ctx context.Context, filename, contentType string, body io.Reader) (models.User, error) {
	current, ok := u.User()
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	if u.uploader == nil {
		return models.User{}, errors.New("avatar uploads are not configured")
	}
	url, err := u.uploader.UploadAvatar(ctx, current.ID, filename, contentType, body)
	if err != nil {
		return models.User{}, fmt.Errorf("upload avatar: %w", err)
	}
	return u.UpdateProfile(ctx, models.ProfileUpdate{Avatar: url})
}

func (u *UserStore) AddToWishlist(productID string) {
	u.mutate(func() bool {
		if slices.Contains(u.wishlist, productID) {
			return false
		}
		u.wishlist = append(u.wishlist, productID)
		return true
	})
}

func (u *UserStore) RemoveFromWishlist(productID string) {
	u.mutate(func() bool {
		i := slices.Index(u.wishlist, productID)
		if i < 0 {
			return false
		}
		u.wishlist = slices.Delete(u.wishlist, i, i+1)
		return true
	})
}

// ToggleWishlist flips membership and reports whether the product is now in
// the wishlist.
func (u *UserStore) ToggleWishlist(productID string) bool {
	var added bool
	u.mutate(func() bool {
		if i := slices.Index(u.wishlist, productID); i >= 0 {
			u.wishlist = slices.Delete(u.wishlist, i, i+1)
			return true
		}
		u.wishlist = append(u.wishlist, productID)
		added = true
		return true
	})
	return added
}

func (u *UserStore) IsInWishlist(productID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Contains(u.wishlist, productID)
}

func (u *UserStore) Wishlist() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.wishlist)
}

// AddToRecentlyViewed moves the product to the front, keeping at most
// MaxRecentlyViewed distinct entries.
func (u *UserStore) AddToRecentlyViewed(productID string) {
	u.mutate(func() bool {
		next := make([]string, 0, MaxRecentlyViewed)
		next = append(next, productID)
		for _, id := range u.recentlyViewed {
			if id != productID && len(next) < MaxRecentlyViewed {
				next = append(next, id)
			}
		}
		u.recentlyViewed = next
		return true
	})
}

func (u *UserStore) RecentlyViewed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.recentlyViewed)
}

func (u *UserStore) ClearRecentlyViewed() {
	u.mutate(func() bool {
		u.recentlyViewed = nil
		return true
	})
}
