package common

// levelDB 所有账户的key （key: AccountsKey - val: 全部账户的json）
const AccountsKey = "levelDBAccountsKey"

// levelDB 众筹合约状态的key
const FundraiserStateKey = "fundraiserState"

// Faucet 账户（注册账户时的初始余额来源，方便测试）
const FaucetAccountAddress = "FaucetAccountAddress"

// redis 转账回执列表的默认key
const TransferReceiptsKey = "transferReceipts"
