package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cloudflare/cfssl/log"
	"github.com/vitaliksokil/ch-7-tutorial/common"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
	"github.com/vitaliksokil/ch-7-tutorial/util"
)

/* 这里封装了所有的对账户的操作
 * 每次持久化都会把全部账户写入 levelDB 的 AccountsKey
 */

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflows")
	ErrAccountExists       = errors.New("account already exists")
)

// Store 账户持久化使用的存储，levelDB.DB 实现了该接口
type Store interface {
	DBGet(key string) ([]byte, error)
	DBPut(key string, value []byte) error
}

type State struct {
	Accounts map[string]meta.Account // key: 账户地址 - val: 账户信息
	db       Store
}

func NewState(db Store) *State {
	return &State{
		Accounts: map[string]meta.Account{},
		db:       db,
	}
}

// Clone 副本与原状态共用同一个数据库
func (s *State) Clone() *State {
	accounts := make(map[string]meta.Account, len(s.Accounts))
	for k, v := range s.Accounts {
		accounts[k] = v
	}
	return &State{Accounts: accounts, db: s.db}
}

// 创建账户
func (s *State) CreateAccount(address string, balance meta.Amount, isContract bool) (meta.Account, error) {
	if s.ContainsAddress(address) {
		return meta.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, address)
	}
	account := meta.Account{
		Address:    address,
		Balance:    balance,
		IsContract: isContract,
	}
	s.Accounts[address] = account

	if err := s.PutIntoDisk(); err != nil {
		delete(s.Accounts, address)
		return meta.Account{}, err
	}
	return account, nil
}

// Register 创建普通账户并从 faucet 转入初始余额，失败时不留下任何修改
func (s *State) Register(address, faucet string, initBalance meta.Amount) (meta.Account, error) {
	if s.ContainsAddress(address) {
		return meta.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, address)
	}
	next := s.Clone()
	next.Accounts[address] = meta.Account{Address: address}
	if err := next.Move(faucet, address, initBalance); err != nil {
		return meta.Account{}, err
	}
	if err := next.PutIntoDisk(); err != nil {
		return meta.Account{}, err
	}
	s.Accounts = next.Accounts
	return s.Accounts[address], nil
}

func (s *State) SubBalance(sender string, amount meta.Amount) (meta.Account, error) {
	senderAccount := s.Accounts[sender]
	balance, ok := senderAccount.Balance.CheckedSub(amount)
	if !ok {
		log.Infof("[SubBalance]: Insufficient balance.")
		return senderAccount, ErrInsufficientBalance
	}
	senderAccount.Address = sender
	senderAccount.Balance = balance
	s.Accounts[sender] = senderAccount
	return senderAccount, nil
}

func (s *State) AddBalance(receiver string, amount meta.Amount) (meta.Account, error) {
	receiverAccount := s.Accounts[receiver]
	balance, ok := receiverAccount.Balance.CheckedAdd(amount)
	if !ok {
		return receiverAccount, ErrBalanceOverflow
	}
	receiverAccount.Address = receiver
	receiverAccount.Balance = balance
	s.Accounts[receiver] = receiverAccount
	return receiverAccount, nil
}

// 判断交易发起方是否有足够余额
func (s *State) CanTransfer(sender string, amount meta.Amount) bool {
	if s.Accounts[sender].Balance.Cmp(amount) < 0 {
		log.Infof("[CanTransfer]: Insufficient balance.")
		return false
	}
	return true
}

// Move 只修改内存中的余额，不持久化
func (s *State) Move(from, to string, amount meta.Amount) error {
	if amount.IsZero() {
		return nil
	}
	if !s.CanTransfer(from, amount) {
		return ErrInsufficientBalance
	}
	// 先检查接收方，避免扣款后才发现溢出
	if _, ok := s.Accounts[to].Balance.CheckedAdd(amount); !ok {
		return ErrBalanceOverflow
	}
	if _, err := s.SubBalance(from, amount); err != nil {
		return err
	}
	_, err := s.AddBalance(to, amount)
	return err
}

// Transfer 由 from 向 to 转账并持久化，持久化失败时恢复余额
func (s *State) Transfer(from, to string, amount meta.Amount) error {
	if amount.IsZero() {
		return nil
	}
	fromAccount, fromOK := s.Accounts[from]
	toAccount, toOK := s.Accounts[to]
	if err := s.Move(from, to, amount); err != nil {
		return err
	}
	if err := s.PutIntoDisk(); err != nil {
		s.restore(from, fromAccount, fromOK)
		s.restore(to, toAccount, toOK)
		return err
	}
	return nil
}

func (s *State) restore(address string, account meta.Account, existed bool) {
	if existed {
		s.Accounts[address] = account
		return
	}
	delete(s.Accounts, address)
}

func (s *State) Encode() ([]byte, error) {
	bytes, err := json.Marshal(s.Accounts)
	util.DealJsonErr("Encode", err)
	return bytes, err
}

// 持久化（每次对账户信息的更改都需要持久化到磁盘）
func (s *State) PutIntoDisk() error {
	bytes, err := s.Encode()
	if err != nil {
		return err
	}
	return s.db.DBPut(common.AccountsKey, bytes)
}

// 从磁盘获取已有的账户信息（在节点启动时执行）
func (s *State) GetFromDisk() error {
	accountBytes, err := s.db.DBGet(common.AccountsKey)
	if err != nil || accountBytes == nil {
		return err
	}
	accounts := map[string]meta.Account{}
	if err := json.Unmarshal(accountBytes, &accounts); err != nil {
		util.DealJsonErr("GetFromDisk", err)
		return err
	}
	s.Accounts = accounts
	return nil
}

// 账户地址是否存在
func (s *State) ContainsAddress(address string) bool {
	_, ok := s.Accounts[address]
	return ok
}

// 获取账户信息
func (s *State) GetAccount(address string) meta.Account {
	return s.Accounts[address]
}

// 获取所有的账户地址，按地址排序
func (s *State) GetTotalAddress() []string {
	totalAddress := make([]string, 0, len(s.Accounts))
	for address := range s.Accounts {
		totalAddress = append(totalAddress, address)
	}
	sort.Strings(totalAddress)
	return totalAddress
}
