package contract

import (
	"encoding/json"

	"github.com/vitaliksokil/ch-7-tutorial/account"
	"github.com/vitaliksokil/ch-7-tutorial/common"
	"github.com/vitaliksokil/ch-7-tutorial/fundraiser"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
	"github.com/vitaliksokil/ch-7-tutorial/util"
)

// 读取合约状态，尚未初始化时返回 nil
func loadState(db Store) (*fundraiser.Contract, error) {
	ok, err := db.Has(common.FundraiserStateKey)
	if err != nil || !ok {
		return nil, err
	}
	bs, err := db.DBGet(common.FundraiserStateKey)
	if err != nil {
		return nil, err
	}
	state := fundraiser.New()
	if err := json.Unmarshal(bs, state); err != nil {
		util.DealJsonErr("loadState", err)
		return nil, err
	}
	if state.Fundraisers == nil {
		state.Fundraisers = map[uint8]meta.Fundraiser{}
	}
	return state, nil
}

// 合约状态与账户在同一个batch中写入
func commit(db Store, state *fundraiser.Contract, accounts *account.State) error {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		util.DealJsonErr("commit", err)
		return err
	}
	accountBytes, err := accounts.Encode()
	if err != nil {
		return err
	}
	return db.WriteBatch(map[string][]byte{
		common.FundraiserStateKey: stateBytes,
		common.AccountsKey:        accountBytes,
	})
}
