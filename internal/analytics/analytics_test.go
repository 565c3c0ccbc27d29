package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/afridaasad/craftique-backend/models"

	"github.com/glebarez/sqlite"
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
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, artisanID uint, title, category, price string) models.Product {
	t.Helper()
	product := models.Product{
		ArtisanID: artisanID,
		Title:     title,
		Category:  category,
		Price:     decimal.RequireFromString(price),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, db *gorm.DB, buyerID uint, status string, createdAt time.Time, items ...models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		BuyerID:        buyerID,
		Status:         status,
		DeliveryStatus: models.DeliveryStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("created_at", createdAt).Error)
	for i := range items {
		items[i].OrderID = order.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return order
}

func TestArtisanDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	artisan := seedUser(t, db, "artisan", models.RoleArtisan)
	rival := seedUser(t, db, "rival", models.RoleArtisan)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)

	vase := seedProduct(t, db, artisan.ID, "Clay Vase", "Pottery", "10.00")
	bowl := seedProduct(t, db, artisan.ID, "Oak Bowl", "Woodcraft", "25.00")
	scarf := seedProduct(t, db, rival.ID, "Woven Scarf", "Textiles", "40.00")

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC)

	// Two orders for the artisan: 2×10.00 in March, 1×25.00 in April.
	seedOrder(t, db, buyer.ID, models.OrderStatusApproved, march,
		models.OrderItem{ProductID: vase.ID, Quantity: 2, Price: vase.Price})
	seedOrder(t, db, buyer.ID, models.OrderStatusPending, april,
		models.OrderItem{ProductID: bowl.ID, Quantity: 1, Price: bowl.Price})

	// A rival's sale must not leak into this artisan's report.
	seedOrder(t, db, buyer.ID, models.OrderStatusApproved, april,
		models.OrderItem{ProductID: scarf.ID, Quantity: 1, Price: scarf.Price})

	report, err := svc.ArtisanDashboard(ctx, artisan.ID)
	require.NoError(t, err)

	assert.Equal(t, 45.0, report.TotalSales)
	assert.Equal(t, int64(2), report.TotalOrders)
	assert.Equal(t, int64(2), report.TotalProducts)
	assert.Equal(t, 22.5, report.AvgOrderValue)
	assert.Equal(t, map[string]float64{"Mar": 20.0, "Apr": 25.0}, report.MonthlyEarnings)
	assert.Equal(t, map[string]int64{"Pottery": 1, "Woodcraft": 1}, report.CategoryDistribution)

	require.Len(t, report.TopSellingProducts, 2)
	assert.Equal(t, "Clay Vase", report.TopSellingProducts[0].Title)
	assert.Equal(t, uint(2), report.TopSellingProducts[0].TotalQuantity)

	require.Len(t, report.RecentSales, 2)
	assert.Equal(t, "Oak Bowl", report.RecentSales[0].Title)
}

func TestArtisanDashboardNoSales(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	artisan := seedUser(t, db, "artisan", models.RoleArtisan)
	seedProduct(t, db, artisan.ID, "Clay Vase", "Pottery", "10.00")

	report, err := svc.ArtisanDashboard(context.Background(), artisan.ID)
	require.NoError(t, err)

	// Division guarded by flooring the denominator at 1.
	assert.Zero(t, report.TotalSales)
	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.AvgOrderValue)
	assert.Equal(t, int64(1), report.TotalProducts)
	assert.Empty(t, report.TopSellingProducts)
	assert.Empty(t, report.RecentSales)
}

func TestArtisanDashboardTopFiveCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	artisan := seedUser(t, db, "artisan", models.RoleArtisan)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)

	now := time.Now()
	titles := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, title := range titles {
		product := seedProduct(t, db, artisan.ID, title, "Pottery", "5.00")
		seedOrder(t, db, buyer.ID, models.OrderStatusApproved, now,
			models.OrderItem{ProductID: product.ID, Quantity: uint(i + 1), Price: product.Price})
	}

	report, err := svc.ArtisanDashboard(context.Background(), artisan.ID)
	require.NoError(t, err)

	require.Len(t, report.TopSellingProducts, 5)
	assert.Equal(t, "G", report.TopSellingProducts[0].Title)
	assert.Equal(t, uint(7), report.TopSellingProducts[0].TotalQuantity)
	assert.Len(t, report.RecentSales, 5)
}

func TestAdminDashboardRevenueCountsApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	artisan := seedUser(t, db, "artisan", models.RoleArtisan)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	seedUser(t, db, "admin", models.RoleAdmin)

	vase := seedProduct(t, db, artisan.ID, "Clay Vase", "Pottery", "10.00")

	now := time.Now()
	approved := seedOrder(t, db, buyer.ID, models.OrderStatusApproved, now,
		models.OrderItem{ProductID: vase.ID, Quantity: 3, Price: vase.Price})
	seedOrder(t, db, buyer.ID, models.OrderStatusPending, now,
		models.OrderItem{ProductID: vase.ID, Quantity: 5, Price: vase.Price})
	seedOrder(t, db, buyer.ID, models.OrderStatusDenied, now,
		models.OrderItem{ProductID: vase.ID, Quantity: 7, Price: vase.Price})

	report, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.UserStats.Total)
	assert.Equal(t, int64(1), report.UserStats.Buyers)
	assert.Equal(t, int64(1), report.UserStats.Artisans)
	assert.Equal(t, int64(1), report.TotalProducts)
	assert.Equal(t, int64(3), report.OrderStats.TotalOrders)
	assert.Equal(t, map[string]int64{
		models.OrderStatusApproved: 1,
		models.OrderStatusPending:  1,
		models.OrderStatusDenied:   1,
	}, report.OrderStats.StatusBreakdown)
	assert.Equal(t, 30.0, report.EstimatedRevenue)

	// No caching: flipping the approved order to denied removes its
	// items from the estimate on the next computation.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", approved.ID).
		Update("status", models.OrderStatusDenied).Error)

	report, err = svc.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.EstimatedRevenue)
}
