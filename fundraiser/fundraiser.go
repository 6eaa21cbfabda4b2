// Package fundraiser 众筹合约的状态与状态转移。
//
// 调用者身份和附带的转账金额由调用方显式传入，捐款产生的转账作为返回值交给链执行，
// 本包不依赖任何链上环境。
package fundraiser

import (
	"math"

	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

// Contract 合约状态
type Contract struct {
	Fundraisers      map[uint8]meta.Fundraiser `json:"fundraisers"`
	TotalFundraisers uint8                     `json:"total_fundraisers"` // 已创建的项目数，同时是最新的id
}

func New() *Contract {
	return &Contract{
		Fundraisers:      map[uint8]meta.Fundraiser{},
		TotalFundraisers: 0,
	}
}

// Clone 返回状态副本，调用失败时直接丢弃副本即可
func (c *Contract) Clone() *Contract {
	return &Contract{
		Fundraisers:      c.GetAllFundraisers(),
		TotalFundraisers: c.TotalFundraisers,
	}
}

func (c *Contract) GetAllFundraisers() map[uint8]meta.Fundraiser {
	all := make(map[uint8]meta.Fundraiser, len(c.Fundraisers))
	for id, f := range c.Fundraisers {
		all[id] = f
	}
	return all
}

func (c *Contract) GetFundraiserByID(id uint8) (meta.Fundraiser, error) {
	f, ok := c.Fundraisers[id]
	if !ok {
		return meta.Fundraiser{}, ErrNotFound
	}
	return f, nil
}

// AddNewFundraiser 创建众筹项目，owner 为调用者地址，返回新项目的id
func (c *Contract) AddNewFundraiser(owner, title, description, bannerImage, fundraisingAmount string, purpose meta.Purpose) (uint8, error) {
	amount, err := meta.ParseAmount(fundraisingAmount)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if title == "" {
		return 0, &EmptyFieldError{Field: "title"}
	}
	if description == "" {
		return 0, &EmptyFieldError{Field: "description"}
	}
	if bannerImage == "" {
		return 0, &EmptyFieldError{Field: "banner"}
	}
	if amount.IsZero() {
		return 0, ErrZeroGoal
	}
	if !purpose.Valid() {
		return 0, ErrInvalidPurpose
	}
	// id 不回绕，也不复用
	if c.TotalFundraisers == math.MaxUint8 {
		return 0, ErrIDSpaceExhausted
	}

	c.TotalFundraisers++
	id := c.TotalFundraisers
	c.Fundraisers[id] = meta.Fundraiser{
		OwnerID:            owner,
		Title:              title,
		Description:        description,
		BannerImage:        bannerImage,
		TotalDonated:       meta.ZeroAmount,
		FundraisingAmount:  amount,
		FundraisingPurpose: purpose,
	}
	return id, nil
}

// Donate 记录捐款并返回需要转给项目创建者的转账。
// deposit 是调用附带的金额，为0时同样接受。
func (c *Contract) Donate(id uint8, deposit meta.Amount) (meta.Transfer, error) {
	f, ok := c.Fundraisers[id]
	if !ok {
		return meta.Transfer{}, ErrNotFound
	}

	total, ok := f.TotalDonated.CheckedAdd(deposit)
	if !ok {
		return meta.Transfer{}, ErrOverflow
	}
	f.TotalDonated = total
	c.Fundraisers[id] = f

	return meta.Transfer{To: f.OwnerID, Amount: deposit}, nil
}
