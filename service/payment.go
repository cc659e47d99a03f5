package service

import (
	"time"

	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/utils"
)

// ApplyPurchaseOrderPayment 对待付款采购单记一笔付款
// 校验全部通过后才修改，拒绝时采购单保持原状
// 付清后置为已结清并记录结清日期
func ApplyPurchaseOrderPayment(po *models.PurchaseOrder, amount float64, now time.Time) error {
	if !utils.IsPositiveAmount(amount) {
		return utils.CreateInvalidAmountError("付款金额必须为有限的正数")
	}
	if po.Status == models.PurchaseOrderStatusSettled {
		return utils.CreateBadRequestError("采购单已结清，不能继续付款")
	}
	if amount > po.Outstanding() {
		return utils.CreateOverpaymentError("付款金额超过采购单未付余额")
	}

	po.PaidAmount = utils.AddAmount(po.PaidAmount, amount)
	po.UpdatedAt = now

	if po.PaidAmount >= po.TotalAmount {
		po.Status = models.PurchaseOrderStatusSettled
		paidDate := now
		po.PaidDate = &paidDate
	}

	return nil
}

// PropagatePoPaymentToProject 把采购单付款同步到所属项目
// 维持不变量 pendingPoPayments = totalPoCost - paidToPos
func PropagatePoPaymentToProject(project *models.Project, amount float64, now time.Time) {
	project.PaidToPos = utils.AddAmount(project.PaidToPos, amount)
	project.PendingPoPayments = utils.SubAmount(project.TotalPoCost, project.PaidToPos)
	project.UpdatedAt = now
}

// ApplyCustomerPayment 对进行中项目记一笔客户回款
// 回款不能超过剩余应收；余额清零后项目完结，完结后拒绝继续回款
func ApplyCustomerPayment(project *models.Project, amount float64, now time.Time) error {
	if !utils.IsPositiveAmount(amount) {
		return utils.CreateInvalidAmountError("回款金额必须为有限的正数")
	}
	if project.Status == models.ProjectStatusCompleted {
		return utils.CreateBadRequestError("项目已完结，不能继续回款")
	}
	if amount > project.BalanceRemaining {
		return utils.CreateOverpaymentError("回款金额超过项目剩余应收")
	}

	project.AdvanceReceived = utils.AddAmount(project.AdvanceReceived, amount)
	project.BalanceRemaining = utils.SubAmount(project.TotalValue, project.AdvanceReceived)
	project.UpdatedAt = now

	if project.BalanceRemaining <= 0 {
		project.Status = models.ProjectStatusCompleted
		completedAt := now
		project.CompletedAt = &completedAt
	}

	return nil
}
