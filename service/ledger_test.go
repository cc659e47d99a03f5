package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/bms_end/models"
)

// fakeAllocator 返回按前缀自增的业务编号
func fakeAllocator() CodeAllocator {
	counters := make(map[string]int)
	return func(prefix string) (string, error) {
		counters[prefix]++
		return fmt.Sprintf("%s-%05d", prefix, counters[prefix]), nil
	}
}

func fakeLookup(items map[string]models.InventoryItem) InventoryLookup {
	return func(name string) *models.InventoryItem {
		if item, ok := items[name]; ok {
			return &item
		}
		return nil
	}
}

func panelBracketQuote() *models.Quote {
	return &models.Quote{
		ID:          primitive.NewObjectID(),
		QuoteNo:     "QUO-00001",
		ProjectName: "展厅装修",
		Items: []models.QuoteItem{
			{Name: "Panel", Type: models.ItemTypeMaterial, Quantity: 2, UnitPrice: 450.00},
			{Name: "Bracket", Type: models.ItemTypeHardware, Quantity: 2, UnitPrice: 35.00},
		},
		ProfitMarginPercent: 20,
	}
}

func panelBracketInventory() map[string]models.InventoryItem {
	return map[string]models.InventoryItem{
		"Panel":   {Name: "Panel", SupplierID: "sup-a", SupplierName: "华东板材"},
		"Bracket": {Name: "Bracket", SupplierID: "sup-b", SupplierName: "五金城"},
	}
}

func TestComputeQuoteTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.QuoteItem
		margin       float64
		wantSubtotal float64
		wantProfit   float64
		wantTotal    float64
	}{
		{
			name: "面板支架场景",
			items: []models.QuoteItem{
				{Name: "Panel", Quantity: 2, UnitPrice: 450.00},
				{Name: "Bracket", Quantity: 2, UnitPrice: 35.00},
			},
			margin:       20,
			wantSubtotal: 970.00,
			wantProfit:   194.00,
			wantTotal:    1164.00,
		},
		{
			name: "零利润率",
			items: []models.QuoteItem{
				{Name: "Door", Quantity: 3, UnitPrice: 120.50},
			},
			margin:       0,
			wantSubtotal: 361.50,
			wantProfit:   0,
			wantTotal:    361.50,
		},
		{
			name: "浮点单价不累积误差",
			items: []models.QuoteItem{
				{Name: "Screw", Quantity: 10, UnitPrice: 0.10},
				{Name: "Nut", Quantity: 10, UnitPrice: 0.20},
			},
			margin:       10,
			wantSubtotal: 3.00,
			wantProfit:   0.30,
			wantTotal:    3.30,
		},
		{
			name:         "空行项目",
			items:        nil,
			margin:       20,
			wantSubtotal: 0,
			wantProfit:   0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeQuoteTotals(tt.items, tt.margin)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantProfit, totals.Profit)
			assert.Equal(t, tt.wantTotal, totals.Total)
		})
	}
}

func TestPartitionItemsBySupplier(t *testing.T) {
	quote := panelBracketQuote()
	buckets := PartitionItemsBySupplier(quote.Items, fakeLookup(panelBracketInventory()))

	// 两个供应商产生两张采购单
	require.Len(t, buckets, 2)
	assert.Equal(t, "sup-a", buckets[0].SupplierID)
	assert.Equal(t, "sup-b", buckets[1].SupplierID)

	// 采购金额合计等于报价小计（不含利润）
	assert.Equal(t, 970.00, buckets[0].TotalAmount+buckets[1].TotalAmount)
}

func TestPartitionItemsBySupplier_GroupsSameSupplier(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Panel", Quantity: 1, UnitPrice: 450.00},
		{Name: "Board", Quantity: 2, UnitPrice: 80.00},
	}
	inventory := map[string]models.InventoryItem{
		"Panel": {Name: "Panel", SupplierID: "sup-a", SupplierName: "华东板材"},
		"Board": {Name: "Board", SupplierID: "sup-a", SupplierName: "华东板材"},
	}

	buckets := PartitionItemsBySupplier(items, fakeLookup(inventory))

	require.Len(t, buckets, 1)
	assert.Len(t, buckets[0].Items, 2)
	assert.Equal(t, 610.00, buckets[0].TotalAmount)
}

func TestPartitionItemsBySupplier_UnknownItemsFallBack(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "定制雕花", Quantity: 1, UnitPrice: 300.00},
		{Name: "人工费", Quantity: 2, UnitPrice: 150.00},
	}

	// 全部查不到库存时归入单个哨兵分组
	buckets := PartitionItemsBySupplier(items, fakeLookup(nil))

	require.Len(t, buckets, 1)
	assert.Equal(t, models.SupplierUnassigned, buckets[0].SupplierID)
	assert.Equal(t, 600.00, buckets[0].TotalAmount)
}

func TestPartitionItemsBySupplier_DisjointCover(t *testing.T) {
	items := []models.QuoteItem{
		{Name: "Panel", Quantity: 2, UnitPrice: 450.00},
		{Name: "Bracket", Quantity: 2, UnitPrice: 35.00},
		{Name: "定制雕花", Quantity: 1, UnitPrice: 300.00},
	}

	buckets := PartitionItemsBySupplier(items, fakeLookup(panelBracketInventory()))

	// 每个行项目恰好出现在一个分组中
	seen := make(map[string]int)
	total := 0
	for _, bucket := range buckets {
		for _, item := range bucket.Items {
			seen[item.Name]++
			total++
		}
	}
	assert.Equal(t, len(items), total)
	for _, item := range items {
		assert.Equal(t, 1, seen[item.Name], "行项目 %s 应恰好出现一次", item.Name)
	}
}

func TestBuildConversion(t *testing.T) {
	quote := panelBracketQuote()
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}
	now := time.Now()

	project, orders, err := BuildConversion(quote, customer, 500, fakeLookup(panelBracketInventory()), fakeAllocator(), now)
	require.NoError(t, err)

	// 项目金额
	assert.Equal(t, 1164.00, project.TotalValue)
	assert.Equal(t, 500.00, project.AdvanceReceived)
	assert.Equal(t, 664.00, project.BalanceRemaining)
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	assert.Equal(t, customer.Name, project.CustomerName)
	assert.Equal(t, quote.ID, project.QuoteID)

	// 每个供应商一张采购单，合计等于小计
	require.Len(t, orders, 2)
	poSum := 0.0
	for _, po := range orders {
		assert.Equal(t, models.PurchaseOrderStatusPending, po.Status)
		assert.Equal(t, 0.0, po.PaidAmount)
		poSum += po.TotalAmount
	}
	assert.Equal(t, 970.00, poSum)

	// 项目对账字段
	assert.Equal(t, 970.00, project.TotalPoCost)
	assert.Equal(t, 0.0, project.PaidToPos)
	assert.Equal(t, 970.00, project.PendingPoPayments)

	// 采购单编号记录在项目上
	require.Len(t, project.PurchaseOrderIDs, 2)
	assert.Equal(t, orders[0].OrderNo, project.PurchaseOrderIDs[0])
	assert.Equal(t, orders[1].OrderNo, project.PurchaseOrderIDs[1])
}

func TestBuildConversion_EmptyQuoteRejected(t *testing.T) {
	quote := &models.Quote{ID: primitive.NewObjectID()}
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}

	_, _, err := BuildConversion(quote, customer, 0, fakeLookup(nil), fakeAllocator(), time.Now())
	require.Error(t, err)
}

func TestBuildConversion_AlreadyConvertedRejected(t *testing.T) {
	quote := panelBracketQuote()
	quote.ConvertedProjectID = primitive.NewObjectID()
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}

	_, _, err := BuildConversion(quote, customer, 0, fakeLookup(panelBracketInventory()), fakeAllocator(), time.Now())
	require.Error(t, err)
}

func TestBuildConversion_AdvanceOverTotalRejected(t *testing.T) {
	quote := panelBracketQuote()
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}

	_, _, err := BuildConversion(quote, customer, 1164.01, fakeLookup(panelBracketInventory()), fakeAllocator(), time.Now())
	require.Error(t, err)
}

func TestBuildConversion_FullAdvanceCompletesProject(t *testing.T) {
	quote := panelBracketQuote()
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}

	project, _, err := BuildConversion(quote, customer, 1164.00, fakeLookup(panelBracketInventory()), fakeAllocator(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, project.BalanceRemaining)
	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	require.NotNil(t, project.CompletedAt)
}

func TestBuildConversion_AllUnknownSuppliersSingleOrder(t *testing.T) {
	quote := panelBracketQuote()
	customer := &models.Customer{ID: primitive.NewObjectID(), Name: "测试客户"}

	// 所有行项目都查不到库存，生成单张哨兵供应商采购单
	project, orders, err := BuildConversion(quote, customer, 0, fakeLookup(nil), fakeAllocator(), time.Now())
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, models.SupplierUnassigned, orders[0].SupplierID)
	assert.Equal(t, 970.00, orders[0].TotalAmount)
	assert.Equal(t, 970.00, project.TotalPoCost)
}
