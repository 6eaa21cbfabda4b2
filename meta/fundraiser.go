package meta

import "errors"

var ErrInvalidPurpose = errors.New("invalid fundraising purpose")

// 众筹目的，固定集合
type Purpose string

const (
	Medicine    Purpose = "Medicine"
	Children    Purpose = "Children"
	Disability  Purpose = "Disability"
	Environment Purpose = "Environment"
	Animal      Purpose = "Animal"
	Education   Purpose = "Education"
)

var purposes = map[Purpose]struct{}{
	Medicine:    {},
	Children:    {},
	Disability:  {},
	Environment: {},
	Animal:      {},
	Education:   {},
}

func (p Purpose) Valid() bool {
	_, ok := purposes[p]
	return ok
}

func ParsePurpose(s string) (Purpose, error) {
	p := Purpose(s)
	if !p.Valid() {
		return "", ErrInvalidPurpose
	}
	return p, nil
}

// 众筹项目
type Fundraiser struct {
	OwnerID            string  `json:"owner_id"` // 创建者地址
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	BannerImage        string  `json:"banner_image"`
	TotalDonated       Amount  `json:"total_donated"`      // 累计收到的捐款
	FundraisingAmount  Amount  `json:"fundraising_amount"` // 目标金额，仅展示
	FundraisingPurpose Purpose `json:"fundraising_purpose"`
}
