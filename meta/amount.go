package meta

import (
	"encoding/json"
	"errors"
	"math/big"
	"strings"

	"lukechampine.com/uint128"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount 最小货币单位计量的金额，128位无符号整数
type Amount struct {
	v uint128.Uint128
}

var (
	ZeroAmount = Amount{}
	MaxAmount  = Amount{uint128.Max}
)

func NewAmount(v uint64) Amount {
	return Amount{uint128.From64(v)}
}

// ParseAmount 解析十进制字符串，不接受负号、空白以及超出128位的数值
func ParseAmount(s string) (Amount, error) {
	if s == "" || strings.HasPrefix(s, "-") {
		return Amount{}, ErrInvalidAmount
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok || i.Sign() < 0 || i.BitLen() > 128 {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{uint128.FromBig(i)}, nil
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(b.v)
}

// CheckedAdd 溢出时返回 false，不回绕
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum := a.v.AddWrap(b.v)
	if sum.Cmp(a.v) < 0 {
		return a, false
	}
	return Amount{sum}, true
}

func (a Amount) CheckedSub(b Amount) (Amount, bool) {
	if a.v.Cmp(b.v) < 0 {
		return a, false
	}
	return Amount{a.v.Sub(b.v)}, true
}

func (a Amount) String() string {
	return a.v.String()
}

// json中以字符串表示，避免前端精度丢失
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.v.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
