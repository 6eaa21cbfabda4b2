package meta

// 账户（普通账户和合约账户）
type Account struct {
	Address    string `json:"address"` // 账户地址
	Balance    Amount `json:"balance"` // 账户余额
	IsContract bool   `json:"is_contract"`
}
