package service

import (
	"time"

	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/repository"
	"github.com/BerniceZTT/bms_end/utils"
)

// InventoryLookup 按物料名称查询库存，未命中返回nil
type InventoryLookup func(name string) *models.InventoryItem

// CodeAllocator 分配业务编号（PRJ-00001 / PO-00001）
type CodeAllocator func(prefix string) (string, error)

// QuoteTotals 报价单金额汇总
type QuoteTotals struct {
	Subtotal float64
	Profit   float64
	Total    float64
}

// ComputeQuoteTotals 计算报价单金额
// subtotal = Σ(数量×单价)，profit = subtotal×利润率/100，total = subtotal+profit
func ComputeQuoteTotals(items []models.QuoteItem, marginPercent float64) QuoteTotals {
	lineTotals := make([]float64, len(items))
	for i, item := range items {
		lineTotals[i] = utils.LineTotal(item.Quantity, item.UnitPrice)
	}
	subtotal := utils.SumAmounts(lineTotals...)
	profit := utils.ApplyMarginPercent(subtotal, marginPercent)
	total := utils.AddAmount(subtotal, profit)

	return QuoteTotals{Subtotal: subtotal, Profit: profit, Total: total}
}

// SupplierBucket 按供应商分组的报价行项目
type SupplierBucket struct {
	SupplierID   string
	SupplierName string
	Items        []models.OrderItem
	TotalAmount  float64
}

// PartitionItemsBySupplier 按库存物料的供应商把报价行项目分组
// 每个行项目恰好落入一个分组；按名称查不到库存物料的行项目
// 归入 unassigned 哨兵分组。分组顺序为供应商首次出现的顺序
func PartitionItemsBySupplier(items []models.QuoteItem, lookup InventoryLookup) []SupplierBucket {
	var buckets []SupplierBucket
	index := make(map[string]int)

	for _, item := range items {
		supplierID := models.SupplierUnassigned
		supplierName := models.SupplierUnassignedName
		if inv := lookup(item.Name); inv != nil && inv.SupplierID != "" {
			supplierID = inv.SupplierID
			supplierName = inv.SupplierName
		}

		i, ok := index[supplierID]
		if !ok {
			i = len(buckets)
			index[supplierID] = i
			buckets = append(buckets, SupplierBucket{
				SupplierID:   supplierID,
				SupplierName: supplierName,
			})
		}

		buckets[i].Items = append(buckets[i].Items, models.OrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		buckets[i].TotalAmount = utils.AddAmount(
			buckets[i].TotalAmount,
			utils.LineTotal(item.Quantity, item.UnitPrice),
		)
	}

	return buckets
}

// BuildConversion 把已确认的报价单构建为一个项目和一组采购单
// 只做校验和构建，不访问数据库；所有校验通过前不产生任何变更，
// 编号分配通过 allocate 注入。持久化由调用方在事务内完成
func BuildConversion(
	quote *models.Quote,
	customer *models.Customer,
	advance float64,
	lookup InventoryLookup,
	allocate CodeAllocator,
	now time.Time,
) (*models.Project, []*models.PurchaseOrder, error) {
	if len(quote.Items) == 0 {
		return nil, nil, utils.CreateBadRequestError("报价单没有可转换的行项目")
	}
	if quote.IsConverted() {
		return nil, nil, utils.CreateBadRequestError("报价单已转为项目，不能重复转换")
	}

	totals := ComputeQuoteTotals(quote.Items, quote.ProfitMarginPercent)

	if !utils.IsValidAmount(advance) {
		return nil, nil, utils.CreateInvalidAmountError("预收款必须为有限的非负数")
	}
	if advance > totals.Total {
		return nil, nil, utils.CreateOverpaymentError("预收款不能超过报价总额")
	}

	projectNo, err := allocate(repository.ProjectNoPrefix)
	if err != nil {
		return nil, nil, err
	}

	buckets := PartitionItemsBySupplier(quote.Items, lookup)

	orders := make([]*models.PurchaseOrder, 0, len(buckets))
	orderNos := make([]string, 0, len(buckets))
	poCosts := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		orderNo, err := allocate(repository.OrderNoPrefix)
		if err != nil {
			return nil, nil, err
		}
		orders = append(orders, &models.PurchaseOrder{
			OrderNo:      orderNo,
			SupplierID:   bucket.SupplierID,
			SupplierName: bucket.SupplierName,
			OrderDate:    now,
			Items:        bucket.Items,
			TotalAmount:  bucket.TotalAmount,
			Status:       models.PurchaseOrderStatusPending,
			PaidAmount:   0,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		orderNos = append(orderNos, orderNo)
		poCosts = append(poCosts, bucket.TotalAmount)
	}

	totalPoCost := utils.SumAmounts(poCosts...)
	balance := utils.SubAmount(totals.Total, advance)

	status := models.ProjectStatusActive
	var completedAt *time.Time
	if balance <= 0 {
		status = models.ProjectStatusCompleted
		completedAt = &now
	}

	project := &models.Project{
		ProjectNo:         projectNo,
		QuoteID:           quote.ID,
		CustomerID:        customer.ID,
		CustomerName:      customer.Name,
		ProjectName:       quote.ProjectName,
		Items:             append([]models.QuoteItem(nil), quote.Items...),
		TotalValue:        totals.Total,
		AdvanceReceived:   utils.Round2(advance),
		BalanceRemaining:  balance,
		PurchaseOrderIDs:  orderNos,
		TotalPoCost:       totalPoCost,
		PaidToPos:         0,
		PendingPoPayments: totalPoCost,
		Status:            status,
		CompletedAt:       completedAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return project, orders, nil
}
