package view

import "time"

type RebalancingRecord struct {
	RecordId     int64     `json:"recordId"`
	UserId       string    `json:"userId"`
	Account      string    `json:"account"`
	RecordDate   time.Time `json:"recordDate"`
	TotalBalance float64   `json:"totalBalance"`
	RecordName   string    `json:"recordName"`
	Memo         string    `json:"memo"`
	ProfitRate   float64   `json:"profitRate"`
}

type SaveRebalancingRequest struct {
	Account      string  `json:"account" validate:"required"`
	TotalBalance float64 `json:"totalBalance"`
	RecordName   string  `json:"recordName" validate:"required"`
	Memo         string  `json:"memo"`
	ProfitRate   float64 `json:"profitRate"`
}

type RebalancingStock struct {
	RecordId          int64   `json:"recordId"`
	StockName         string  `json:"stockName"`
	ExpertPer         float64 `json:"expertPer"`
	MarketOrder       float64 `json:"marketOrder"`
	Rate              float64 `json:"rate"`
	Nos               int     `json:"nos"`
	Won               float64 `json:"won"`
	Dollar            float64 `json:"dollar"`
	RebalancingDollar float64 `json:"rebalancingDollar"`
	StockRegion       int     `json:"stockRegion"`
}

type SaveRebalancingStocksRequest struct {
	RecordId int64       `json:"recordId" validate:"required"`
	Stocks   []StockInfo `json:"stocks" validate:"required,min=1,dive"`
}

type StockInfo struct {
	StockName         string  `json:"stockName" validate:"required"`
	MarketType        string  `json:"marketType"`
	ExpertPer         float64 `json:"expertPer"`
	MarketOrder       float64 `json:"marketOrder"`
	Rate              float64 `json:"rate"`
	Nos               int     `json:"nos"`
	Won               float64 `json:"won"`
	Dollar            float64 `json:"dollar"`
	RebalancingDollar float64 `json:"rebalancingDollar"`
}
