package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
)

var errBackendDown = errors.New("backend unavailable")

func testProduct(id string, price int64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Brand: "Amexan", Price: price, Category: "tops"}
}

var (
	sizeM   = models.Size{ID: "m", Name: "M", Available: true}
	sizeL   = models.Size{ID: "l", Name: "L", Available: true}
	colorBk = models.Color{ID: "bk", Name: "Black", Code: "#000000", Available: true}
)

type fakeOrderBackend struct {
	createErr error
	cancelErr error
	created   []models.OrderDraft
	canceled  []string
	orders    []models.Order
	next      int
	onCreate  func()
}

func (f *fakeOrderBackend) CreateOrder(_ context.Context, draft models.OrderDraft) (models.Order, error) {
	f.created = append(f.created, draft)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return models.Order{}, f.createErr
	}
	f.next++
	return models.Order{
		ID:              fmt.Sprintf("o%d", f.next),
		Items:           draft.Items,
		TotalAmount:     draft.TotalAmount,
		ShippingFee:     draft.ShippingFee,
		PaymentMethod:   draft.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderPending,
		CreatedAt:       time.Now(),
		ShippingAddress: derefAddr(draft.ShippingAddress),
	}, nil
}

func derefAddr(a *models.ShippingAddress) models.ShippingAddress {
	if a == nil {
		return models.ShippingAddress{}
	}
	return *a
}

func (f *fakeOrderBackend) Orders(context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderBackend) Order(_ context.Context, id string) (models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, errBackendDown
}

func (f *fakeOrderBackend) CancelOrder(_ context.Context, id string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceled = append(f.canceled, id)
	return nil
}

func (f *fakeOrderBackend) UpdateOrderStatus(context.Context, string, models.OrderStatus) error {
	return nil
}

type fakeProductFetcher struct {
	page models.ProductPage
	err  error
}

func (f *fakeProductFetcher) Products(context.Context, models.ProductQuery) (models.ProductPage, error) {
	return f.page, f.err
}

func (f *fakeProductFetcher) Product(_ context.Context, id string) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.page.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errBackendDown
}

type fakeAuthBackend struct {
	token     string
	stored    string
	logoutErr error
	loginErr  error
	user      models.User
	profile   models.ProfileUpdate
}

func (f *fakeAuthBackend) Signup(_ context.Context, data models.SignupData) (models.AuthResponse, error) {
	return models.AuthResponse{Token: "signup-token", ID: "u2", Name: data.Name, Email: data.Email}, nil
}

func (f *fakeAuthBackend) Login(_ context.Context, data models.LoginData) (models.AuthResponse, error) {
	if f.loginErr != nil {
		return models.AuthResponse{}, f.loginErr
	}
	return models.AuthResponse{Token: "login-token", Type: "Bearer", ID: "u1", Name: "Mina", Email: data.Email}, nil
}

func (f *fakeAuthBackend) Logout(context.Context) error { return f.logoutErr }

func (f *fakeAuthBackend) CheckEmail(_ context.Context, email string) (bool, error) {
	return email == f.user.Email, nil
}

func (f *fakeAuthBackend) CurrentUser(context.Context) (models.User, error) {
	if f.user.ID == "" {
		return models.User{}, errBackendDown
	}
	return f.user, nil
}

func (f *fakeAuthBackend) UpdateProfile(_ context.Context, update models.ProfileUpdate) (models.User, error) {
	f.profile = update
	u := f.user
	if update.Avatar != "" {
		u.Avatar = update.Avatar
	}
	return u, nil
}

func (f *fakeAuthBackend) ChangePassword(context.Context, models.ChangePasswordData) error { return nil }

func (f *fakeAuthBackend) Token() string { return f.token }

func (f *fakeAuthBackend) SetToken(_ context.Context, token string) {
	f.token = token
	f.stored = token
}

func (f *fakeAuthBackend) ClearToken(context.Context) {
	f.token = ""
	f.stored = ""
}

func (f *fakeAuthBackend) RestoreToken(context.Context) (string, error) {
	f.token = f.stored
	return f.stored, nil
}

type fakeUploader struct {
	key string
}

func (f *fakeUploader) UploadAvatar(_ context.Context, userID, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.key = userID + "/" + filename
	return "https://cdn.example.com/" + f.key, nil
}

// hookedStorage calls onSave from inside Save, before storing the data.
type hookedStorage struct {
	storage.Storage
	onSave func(data []byte)
}

func (h *hookedStorage) Save(ctx context.Context, namespace string, data []byte) error {
	if h.onSave != nil {
		h.onSave(data)
	}
	return h.Storage.Save(ctx, namespace, data)
}
