package fundraiser

import (
	"errors"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
	"gotest.tools/v3/assert"
)

const owner = "alice"

func addRex(t *testing.T, c *Contract) uint8 {
	t.Helper()
	id, err := c.AddNewFundraiser(owner, "Help Rex", "Vet bills", "img1", "1000000", meta.Animal)
	assert.NilError(t, err)
	return id
}

func TestNewIsEmpty(t *testing.T) {
	c := New()
	assert.Equal(t, c.TotalFundraisers, uint8(0))
	assert.Equal(t, len(c.GetAllFundraisers()), 0)
}

func TestAddNewFundraiser(t *testing.T) {
	c := New()
	id := addRex(t, c)
	assert.Equal(t, id, uint8(1))
	assert.Equal(t, c.TotalFundraisers, uint8(1))

	f, err := c.GetFundraiserByID(id)
	assert.NilError(t, err)
	assert.Equal(t, f.OwnerID, owner)
	assert.Equal(t, f.Title, "Help Rex")
	assert.Equal(t, f.Description, "Vet bills")
	assert.Equal(t, f.BannerImage, "img1")
	assert.Assert(t, f.TotalDonated.IsZero())
	assert.Equal(t, f.FundraisingAmount, meta.NewAmount(1000000))
	assert.Equal(t, f.FundraisingPurpose, meta.Animal)

	id2, err := c.AddNewFundraiser("bob", "Trees", "Plant trees", "img2", "5", meta.Environment)
	assert.NilError(t, err)
	assert.Equal(t, id2, uint8(2))
	assert.Equal(t, len(c.GetAllFundraisers()), 2)
}

func TestAddNewFundraiserValidation(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		banner      string
		amount      string
		purpose     meta.Purpose
		want        error
		field       string
	}{
		{name: "empty title", description: "d", banner: "b", amount: "1", purpose: meta.Children, want: ErrEmptyField, field: "title"},
		{name: "empty description", title: "t", banner: "b", amount: "1", purpose: meta.Children, want: ErrEmptyField, field: "description"},
		{name: "empty banner", title: "t", description: "d", amount: "1", purpose: meta.Children, want: ErrEmptyField, field: "banner"},
		{name: "zero goal", title: "t", description: "d", banner: "b", amount: "0", purpose: meta.Children, want: ErrZeroGoal},
		{name: "non numeric goal", title: "t", description: "d", banner: "b", amount: "abc", purpose: meta.Children, want: ErrInvalidAmount},
		{name: "negative goal", title: "t", description: "d", banner: "b", amount: "-5", purpose: meta.Children, want: ErrInvalidAmount},
		{name: "goal above u128", title: "t", description: "d", banner: "b", amount: "340282366920938463463374607431768211456", purpose: meta.Children, want: ErrInvalidAmount},
		{name: "unparseable goal wins over empty title", description: "d", banner: "b", amount: "abc", purpose: meta.Children, want: ErrInvalidAmount},
		{name: "unknown purpose", title: "t", description: "d", banner: "b", amount: "1", purpose: meta.Purpose("Sports"), want: ErrInvalidPurpose},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			addRex(t, c)

			_, err := c.AddNewFundraiser(owner, tc.title, tc.description, tc.banner, tc.amount, tc.purpose)
			assert.Assert(t, errors.Is(err, tc.want), "got %v", err)
			if tc.field != "" {
				var fieldErr *EmptyFieldError
				assert.Assert(t, errors.As(err, &fieldErr))
				assert.Equal(t, fieldErr.Field, tc.field)
			}
			assert.Equal(t, c.TotalFundraisers, uint8(1))
			assert.Equal(t, len(c.Fundraisers), 1)
		})
	}
}

func TestIDSpaceExhausted(t *testing.T) {
	c := New()
	for i := 1; i <= 255; i++ {
		id, err := c.AddNewFundraiser(owner, "t"+strconv.Itoa(i), "d", "b", "1", meta.Education)
		assert.NilError(t, err)
		assert.Equal(t, int(id), i)
	}

	_, err := c.AddNewFundraiser(owner, "one too many", "d", "b", "1", meta.Education)
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, c.TotalFundraisers, uint8(255))
	assert.Equal(t, len(c.Fundraisers), 255)
}

func TestGetFundraiserByIDNotFound(t *testing.T) {
	c := New()
	_, err := c.GetFundraiserByID(1)
	assert.ErrorIs(t, err, ErrNotFound)

	addRex(t, c)
	_, err = c.GetFundraiserByID(0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.GetFundraiserByID(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonate(t *testing.T) {
	c := New()
	id := addRex(t, c)

	transfer, err := c.Donate(id, meta.NewAmount(250000))
	assert.NilError(t, err)
	assert.Equal(t, transfer, meta.Transfer{To: owner, Amount: meta.NewAmount(250000)})
	f, _ := c.GetFundraiserByID(id)
	assert.Equal(t, f.TotalDonated, meta.NewAmount(250000))

	_, err = c.Donate(id, meta.NewAmount(750000))
	assert.NilError(t, err)
	f, _ = c.GetFundraiserByID(id)
	assert.Equal(t, f.TotalDonated, meta.NewAmount(1000000))

	// 超过目标金额后仍然接受捐款
	_, err = c.Donate(id, meta.NewAmount(1))
	assert.NilError(t, err)
	f, _ = c.GetFundraiserByID(id)
	assert.Equal(t, f.TotalDonated, meta.NewAmount(1000001))
	t.Log(spew.Sdump(c.GetAllFundraisers()))
}

func TestDonateSum(t *testing.T) {
	c := New()
	id := addRex(t, c)

	var want uint64
	for _, a := range []uint64{1, 7, 0, 1 << 40, 99, 123456789} {
		_, err := c.Donate(id, meta.NewAmount(a))
		assert.NilError(t, err)
		want += a
	}
	f, _ := c.GetFundraiserByID(id)
	assert.Equal(t, f.TotalDonated, meta.NewAmount(want))
}

func TestDonateZero(t *testing.T) {
	c := New()
	id := addRex(t, c)

	transfer, err := c.Donate(id, meta.ZeroAmount)
	assert.NilError(t, err)
	assert.Assert(t, transfer.Amount.IsZero())
	assert.Equal(t, transfer.To, owner)
}

func TestDonateNotFound(t *testing.T) {
	c := New()
	addRex(t, c)
	addRex(t, c)
	addRex(t, c)

	transfer, err := c.Donate(250, meta.NewAmount(10))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, transfer, meta.Transfer{})
}

func TestDonateOverflow(t *testing.T) {
	c := New()
	id := addRex(t, c)

	_, err := c.Donate(id, meta.MaxAmount)
	assert.NilError(t, err)

	transfer, err := c.Donate(id, meta.NewAmount(1))
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, transfer, meta.Transfer{})
	f, _ := c.GetFundraiserByID(id)
	assert.Equal(t, f.TotalDonated, meta.MaxAmount)
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	id := addRex(t, c)

	next := c.Clone()
	_, err := next.Donate(id, meta.NewAmount(5))
	assert.NilError(t, err)
	_, err = next.AddNewFundraiser(owner, "t", "d", "b", "1", meta.Medicine)
	assert.NilError(t, err)

	f, _ := c.GetFundraiserByID(id)
	assert.Assert(t, f.TotalDonated.IsZero())
	assert.Equal(t, c.TotalFundraisers, uint8(1))
	assert.Equal(t, next.TotalFundraisers, uint8(2))
}
