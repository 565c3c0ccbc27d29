package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afridaasad/craftique-backend/internal/checkout"
	"github.com/afridaasad/craftique-backend/internal/orders"
	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
	))
	return db
}

// authAs stands in for the JWT middleware in tests.
func authAs(user models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", user.ID)
		c.Locals("role", user.Role)
		return c.Next()
	}
}

type testEnv struct {
	db      *gorm.DB
	codes   *checkout.MemoryCodeStore
	artisan models.User
	buyer   models.User
	product models.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{db: db, codes: checkout.NewMemoryCodeStore()}

	env.artisan = models.User{Username: "artisan", Email: "artisan@example.com", Password: "x", Role: models.RoleArtisan}
	require.NoError(t, db.Create(&env.artisan).Error)
	env.buyer = models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleBuyer}
	require.NoError(t, db.Create(&env.buyer).Error)

	env.product = models.Product{
		ArtisanID: env.artisan.ID,
		Title:     "Clay Vase",
		Category:  "Pottery",
		Price:     decimal.RequireFromString("10.00"),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&env.product).Error)

	return env
}

// app wires the checkout and order transition routes the way routes.go
// does, but with a stubbed identity.
func (env *testEnv) app(user models.User) *fiber.App {
	checkoutSvc := checkout.NewService(env.db, env.codes)
	ordersSvc := orders.NewService(env.db)
	checkoutHandler := NewCheckoutHandler(checkoutSvc)
	orderHandler := NewOrderHandler(env.db, checkoutSvc, ordersSvc)

	app := fiber.New()
	api := app.Group("/api", authAs(user))

	buyerOnly := utils.RequireRole(models.RoleBuyer)
	api.Post("/orders/buy-now", buyerOnly, orderHandler.BuyNow)
	api.Post("/checkout/initiate", buyerOnly, checkoutHandler.InitiateCheckout)
	api.Post("/checkout/confirm", buyerOnly, checkoutHandler.ConfirmCheckout)

	fulfilRoles := utils.RequireRole(models.RoleArtisan, models.RoleAdmin)
	api.Patch("/orders/:id/status", fulfilRoles, orderHandler.UpdateOrderStatus)
	api.Patch("/orders/:id/delivery", fulfilRoles, orderHandler.UpdateDeliveryStatus)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestBuyNowEndpoint(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.buyer)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": env.product.ID,
		"quantity":   2,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var order models.Order
	require.NoError(t, env.db.Preload("Items").Last(&order).Error)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Total().Equal(decimal.RequireFromString("20.00")))
}

func TestBuyNowUnknownProductReturns404(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.buyer)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": 9999,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCheckoutRoutesRejectNonBuyers(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.artisan)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/checkout/initiate", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.buyer)

	require.NoError(t, env.db.Create(&models.CartItem{
		BuyerID:   env.buyer.ID,
		ProductID: env.product.ID,
		Quantity:  1,
	}).Error)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/checkout/initiate", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	otp, ok := body["otp"].(string)
	require.True(t, ok)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/checkout/confirm", fiber.Map{
		"otp":              otp,
		"shipping_address": "12 Kiln Street",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.CartItem{}).
		Where("buyer_id = ?", env.buyer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutInitiateEmptyCartReturns400(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.buyer)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/checkout/initiate", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutConfirmWrongCodeReturns400(t *testing.T) {
	env := newTestEnv(t)
	app := env.app(env.buyer)

	require.NoError(t, env.db.Create(&models.CartItem{
		BuyerID:   env.buyer.ID,
		ProductID: env.product.ID,
		Quantity:  1,
	}).Error)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/checkout/initiate", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	otp := body["otp"].(string)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/checkout/confirm", fiber.Map{"otp": wrong})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStatusTransitionEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// Place an order as the buyer first.
	buyerApp := env.app(env.buyer)
	resp, _ := doJSON(t, buyerApp, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": env.product.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, env.db.Last(&order).Error)

	artisanApp := env.app(env.artisan)
	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	resp, _ = doJSON(t, artisanApp, fiber.MethodPatch, path, fiber.Map{"status": "shipped"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, artisanApp, fiber.MethodPatch, path, fiber.Map{"status": "approved"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])

	// Approval is terminal through this endpoint.
	resp, _ = doJSON(t, artisanApp, fiber.MethodPatch, path, fiber.Map{"status": "denied"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	deliveryPath := fmt.Sprintf("/api/orders/%d/delivery", order.ID)
	resp, body = doJSON(t, artisanApp, fiber.MethodPatch, deliveryPath, fiber.Map{"delivery_status": "shipped"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "shipped", body["delivery_status"])

	resp, _ = doJSON(t, artisanApp, fiber.MethodPatch, deliveryPath, fiber.Map{"delivery_status": "pending"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Role guards must bind to their own routes only. Buyer routes are
// registered first, so a guard leaking onto the group prefix would 403
// every artisan request that follows.
func TestRoleGuardsAreRouteScoped(t *testing.T) {
	env := newTestEnv(t)

	buyerApp := env.app(env.buyer)
	resp, _ := doJSON(t, buyerApp, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": env.product.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, env.db.Last(&order).Error)
	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	// The buyer is not a fulfilment role.
	resp, _ = doJSON(t, buyerApp, fiber.MethodPatch, path, fiber.Map{"status": "approved"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The artisan is; the buyer-only guard must not block them.
	artisanApp := env.app(env.artisan)
	resp, _ = doJSON(t, artisanApp, fiber.MethodPatch, path, fiber.Map{"status": "approved"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// And the buyer-only routes still reject the artisan.
	resp, _ = doJSON(t, artisanApp, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": env.product.ID,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStatusTransitionUninvolvedArtisanReturns403(t *testing.T) {
	env := newTestEnv(t)

	buyerApp := env.app(env.buyer)
	resp, _ := doJSON(t, buyerApp, fiber.MethodPost, "/api/orders/buy-now", fiber.Map{
		"product_id": env.product.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, env.db.Last(&order).Error)

	rival := models.User{Username: "rival", Email: "rival@example.com", Password: "x", Role: models.RoleArtisan}
	require.NoError(t, env.db.Create(&rival).Error)

	rivalApp := env.app(rival)
	resp, _ = doJSON(t, rivalApp, fiber.MethodPatch,
		fmt.Sprintf("/api/orders/%d/status", order.ID), fiber.Map{"status": "approved"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
