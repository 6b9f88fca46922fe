package entity

import (
	"time"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type RebalancingRecordEntity struct {
	tableName struct{} `pg:"rebalancing_records, alias:rebalancing_records"`

	RecordId     int64     `pg:"record_id, pk"`
	UserId       string    `pg:"user_id, type:varchar, notnull"`
	Account      string    `pg:"account, type:varchar, notnull"`
	RecordDate   time.Time `pg:"record_date, type:timestamptz, notnull"`
	TotalBalance float64   `pg:"total_balance, type:double precision, use_zero"`
	RecordName   string    `pg:"record_name, type:varchar"`
	Memo         string    `pg:"memo, type:varchar"`
	ProfitRate   float64   `pg:"profit_rate, type:double precision, use_zero"`
}

type RebalancingStockEntity struct {
	tableName struct{} `pg:"rebalancing_stocks, alias:rebalancing_stocks"`

	Id                int64   `pg:"id, pk"`
	RecordId          int64   `pg:"record_id, notnull"`
	StockName         string  `pg:"stock_name, type:varchar, notnull"`
	ExpertPer         float64 `pg:"expert_per, type:double precision, use_zero"`
	MarketOrder       float64 `pg:"market_order, type:double precision, use_zero"`
	Rate              float64 `pg:"rate, type:double precision, use_zero"`
	Nos               int     `pg:"nos, use_zero"`
	Won               float64 `pg:"won, type:double precision, use_zero"`
	Dollar            float64 `pg:"dollar, type:double precision, use_zero"`
	RebalancingDollar float64 `pg:"rebalancing_dollar, type:double precision, use_zero"`
	StockRegion       int     `pg:"stock_region, use_zero"`
}

func MakeRebalancingRecordView(ent *RebalancingRecordEntity) *view.RebalancingRecord {
	return &view.RebalancingRecord{
		RecordId:     ent.RecordId,
		UserId:       ent.UserId,
		Account:      ent.Account,
		RecordDate:   ent.RecordDate,
		TotalBalance: ent.TotalBalance,
		RecordName:   ent.RecordName,
		Memo:         ent.Memo,
		ProfitRate:   ent.ProfitRate,
	}
}

func MakeRebalancingStockView(ent *RebalancingStockEntity) *view.RebalancingStock {
	return &view.RebalancingStock{
		RecordId:          ent.RecordId,
		StockName:         ent.StockName,
		ExpertPer:         ent.ExpertPer,
		MarketOrder:       ent.MarketOrder,
		Rate:              ent.Rate,
		Nos:               ent.Nos,
		Won:               ent.Won,
		Dollar:            ent.Dollar,
		RebalancingDollar: ent.RebalancingDollar,
		StockRegion:       ent.StockRegion,
	}
}
