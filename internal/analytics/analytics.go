// Package analytics is a read-side reducer over the order ledger. Every
// figure is computed on demand; nothing is cached or maintained
// incrementally.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/afridaasad/craftique-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProductSales is one row of the top-sellers list.
type ProductSales struct {
	Title         string `json:"title"`
	TotalQuantity uint   `json:"total_quantity"`
}

// Sale is one row of the recent-sales list.
type Sale struct {
	Title  string    `json:"title"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// ArtisanReport aggregates an artisan's order items.
type ArtisanReport struct {
	TotalSales           float64            `json:"total_sales"`
	TotalOrders          int64              `json:"total_orders"`
	TotalProducts        int64              `json:"total_products"`
	AvgOrderValue        float64            `json:"avg_order_value"`
	MonthlyEarnings      map[string]float64 `json:"monthly_earnings"`
	CategoryDistribution map[string]int64   `json:"category_distribution"`
	TopSellingProducts   []ProductSales     `json:"top_selling_products"`
	RecentSales          []Sale             `json:"recent_sales"`
}

// ArtisanDashboard scans all order items whose product belongs to the
// artisan and reduces them into the dashboard figures.
//
// Monthly earnings are bucketed by three-letter month label; the same
// label across calendar years collapses into one bucket.
func (s *Service) ArtisanDashboard(ctx context.Context, artisanID uint) (*ArtisanReport, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).
		Joins("Product").Joins("Order").
		Where(`"Product"."artisan_id" = ?`, artisanID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	orderIDs := make(map[uint]struct{})
	monthly := make(map[string]decimal.Decimal)
	soldQuantities := make(map[string]uint)

	for _, item := range items {
		subtotal := item.Subtotal()
		totalSales = totalSales.Add(subtotal)
		orderIDs[item.OrderID] = struct{}{}

		month := item.Order.CreatedAt.Format("Jan")
		monthly[month] = monthly[month].Add(subtotal)

		soldQuantities[item.Product.Title] += item.Quantity
	}

	distinctOrders := int64(len(orderIDs))

	// Denominator floored at 1 to guard the zero-orders case.
	denominator := distinctOrders
	if denominator < 1 {
		denominator = 1
	}
	avgOrderValue := totalSales.Div(decimal.NewFromInt(denominator))

	var totalProducts int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("artisan_id = ?", artisanID).Count(&totalProducts).Error; err != nil {
		return nil, err
	}

	categories := make(map[string]int64)
	rows := []struct {
		Category string
		Count    int64
	}{}
	err = s.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, count(id) as count").
		Where("artisan_id = ?", artisanID).
		Group("category").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		categories[row.Category] = row.Count
	}

	topSellers := make([]ProductSales, 0, len(soldQuantities))
	for title, qty := range soldQuantities {
		topSellers = append(topSellers, ProductSales{Title: title, TotalQuantity: qty})
	}
	sort.SliceStable(topSellers, func(i, j int) bool {
		return topSellers[i].TotalQuantity > topSellers[j].TotalQuantity
	})
	if len(topSellers) > 5 {
		topSellers = topSellers[:5]
	}

	recent := make([]models.OrderItem, len(items))
	copy(recent, items)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Order.CreatedAt.After(recent[j].Order.CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentSales := make([]Sale, 0, len(recent))
	for _, item := range recent {
		recentSales = append(recentSales, Sale{
			Title:  item.Product.Title,
			Amount: item.Price.InexactFloat64(),
			Date:   item.Order.CreatedAt,
		})
	}

	monthlyEarnings := make(map[string]float64, len(monthly))
	for month, sum := range monthly {
		monthlyEarnings[month] = sum.Round(2).InexactFloat64()
	}

	return &ArtisanReport{
		TotalSales:           totalSales.Round(2).InexactFloat64(),
		TotalOrders:          distinctOrders,
		TotalProducts:        totalProducts,
		AvgOrderValue:        avgOrderValue.Round(2).InexactFloat64(),
		MonthlyEarnings:      monthlyEarnings,
		CategoryDistribution: categories,
		TopSellingProducts:   topSellers,
		RecentSales:          recentSales,
	}, nil
}

// UserStats counts accounts by role.
type UserStats struct {
	Total    int64 `json:"total"`
	Buyers   int64 `json:"buyers"`
	Artisans int64 `json:"artisans"`
}

// OrderStats counts orders by approval status.
type OrderStats struct {
	TotalOrders     int64            `json:"total_orders"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

// AdminReport is the platform-wide dashboard snapshot.
type AdminReport struct {
	UserStats        UserStats  `json:"user_stats"`
	TotalProducts    int64      `json:"total_products"`
	OrderStats       OrderStats `json:"order_stats"`
	EstimatedRevenue float64    `json:"estimated_revenue"`
}

// AdminDashboard computes the platform snapshot. Revenue counts only
// items whose order is approved; pending and denied orders contribute
// nothing until (and unless) they are approved.
func (s *Service) AdminDashboard(ctx context.Context) (*AdminReport, error) {
	db := s.db.WithContext(ctx)

	var report AdminReport

	if err := db.Model(&models.User{}).Count(&report.UserStats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleBuyer).
		Count(&report.UserStats.Buyers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleArtisan).
		Count(&report.UserStats.Artisans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&report.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&report.OrderStats.TotalOrders).Error; err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64)
	for _, status := range []string{
		models.OrderStatusApproved,
		models.OrderStatusPending,
		models.OrderStatusDenied,
	} {
		var count int64
		if err := db.Model(&models.Order{}).Where("status = ?", status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		breakdown[status] = count
	}
	report.OrderStats.StatusBreakdown = breakdown

	var approvedItems []models.OrderItem
	err := db.Joins("Order").
		Where(`"Order"."status" = ?`, models.OrderStatusApproved).
		Find(&approvedItems).Error
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, item := range approvedItems {
		revenue = revenue.Add(item.Subtotal())
	}
	report.EstimatedRevenue = revenue.Round(2).InexactFloat64()

	return &report, nil
}
