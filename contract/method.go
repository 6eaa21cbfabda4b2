package contract

import (
	"fmt"
	"strconv"

	"github.com/vitaliksokil/ch-7-tutorial/fundraiser"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

const initMethod = "New"

// 方法执行结果，transfer 不为空时由链在提交后执行
type outcome struct {
	result       interface{}
	transfer     *meta.Transfer
	fundraiserID uint8
}

type method struct {
	payable  bool // 是否接受转账
	mutating bool // 是否修改合约状态
	call     func(c *context, state *fundraiser.Contract) (outcome, error)
}

var methods = map[string]method{
	"GetAllFundraisers": {call: getAllFundraisers},
	"GetFundraiserByID": {call: getFundraiserByID},
	"AddNewFundraiser":  {mutating: true, call: addNewFundraiser},
	"Donate":            {payable: true, mutating: true, call: donate},
}

func getAllFundraisers(c *context, state *fundraiser.Contract) (outcome, error) {
	return outcome{result: state.GetAllFundraisers()}, nil
}

func getFundraiserByID(c *context, state *fundraiser.Contract) (outcome, error) {
	id, err := parseID(c.Args)
	if err != nil {
		return outcome{}, err
	}
	f, err := state.GetFundraiserByID(id)
	if err != nil {
		return outcome{}, err
	}
	return outcome{result: f}, nil
}

func addNewFundraiser(c *context, state *fundraiser.Contract) (outcome, error) {
	purpose, err := meta.ParsePurpose(c.Args["fundraising_purpose"])
	if err != nil {
		return outcome{}, err
	}
	id, err := state.AddNewFundraiser(
		c.Caller,
		c.Args["title"],
		c.Args["description"],
		c.Args["banner_image"],
		c.Args["fundraising_amount"],
		purpose,
	)
	if err != nil {
		return outcome{}, err
	}
	return outcome{result: id, fundraiserID: id}, nil
}

// 捐款金额取调用附带的转账，不从参数中读取
func donate(c *context, state *fundraiser.Contract) (outcome, error) {
	id, err := parseID(c.Args)
	if err != nil {
		return outcome{}, err
	}
	transfer, err := state.Donate(id, c.Value)
	if err != nil {
		return outcome{}, err
	}
	return outcome{transfer: &transfer, fundraiserID: id}, nil
}

func parseID(args map[string]string) (uint8, error) {
	s, ok := args["id"]
	if !ok {
		return 0, fmt.Errorf("%w: missing id", ErrInvalidArgs)
	}
	id, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidArgs, s)
	}
	return uint8(id), nil
}
