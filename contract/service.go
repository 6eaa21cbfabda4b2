package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/vitaliksokil/ch-7-tutorial/account"
	"github.com/vitaliksokil/ch-7-tutorial/common"
	"github.com/vitaliksokil/ch-7-tutorial/fundraiser"
	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

/*
 * 链为众筹合约提供的执行环境：调用者身份、附带转账、持久化以及转账执行
 */

var (
	ErrInvalidCall         = errors.New("invalid call params")
	ErrMethodNotFound      = errors.New("method not found")
	ErrNotPayable          = errors.New("method doesn't accept deposit")
	ErrNotInitialized      = errors.New("the contract is not initialized")
	ErrInvalidArgs         = errors.New("invalid arguments")
	ErrInsufficientBalance = account.ErrInsufficientBalance
	ErrOutboxDisabled      = errors.New("receipt outbox is not configured")
	ErrReservedCaller      = errors.New("caller is a reserved account")
)

// Store 合约状态和账户使用的存储，levelDB.DB 实现了该接口
type Store interface {
	account.Store
	Has(key string) (bool, error)
	WriteBatch(kvs map[string][]byte) error
}

// Outbox 转账回执的输出，redis.Client 实现了该接口
type Outbox interface {
	PushToList(key string, value string) error
	GetList(key string) ([]string, error)
}

type Options struct {
	Name        string      // 合约名称
	Address     string      // 合约账户地址，捐款先转入该账户再转给项目创建者
	FaucetFund  meta.Amount // faucet 账户首次创建时的余额
	InitBalance meta.Amount // 新注册账户的初始余额
	Outbox      Outbox      // 可为空
	ReceiptKey  string
}

type Runtime struct {
	mu       sync.Mutex // 所有调用串行执行
	opts     Options
	db       Store
	accounts *account.State
	state    *fundraiser.Contract // 为空表示合约尚未初始化
}

// NewRuntime 从数据库恢复账户和合约状态
func NewRuntime(db Store, opts Options) (*Runtime, error) {
	if opts.Address == "" {
		return nil, fmt.Errorf("%w: empty contract address", ErrInvalidCall)
	}
	if opts.ReceiptKey == "" {
		opts.ReceiptKey = common.TransferReceiptsKey
	}

	accounts := account.NewState(db)
	if err := accounts.GetFromDisk(); err != nil {
		return nil, err
	}
	if !accounts.ContainsAddress(opts.Address) {
		if _, err := accounts.CreateAccount(opts.Address, meta.ZeroAmount, true); err != nil {
			return nil, err
		}
	}
	if !accounts.ContainsAddress(common.FaucetAccountAddress) {
		if _, err := accounts.CreateAccount(common.FaucetAccountAddress, opts.FaucetFund, false); err != nil {
			return nil, err
		}
	}

	state, err := loadState(db)
	if err != nil {
		return nil, err
	}
	if state != nil {
		log.Infof("已恢复合约状态，共 %d 个众筹项目", state.TotalFundraisers)
	}

	return &Runtime{
		opts:     opts,
		db:       db,
		accounts: accounts,
		state:    state,
	}, nil
}

func (r *Runtime) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != nil
}

// Invoke 执行一次合约调用。失败的调用不会修改任何状态，也不会产生转账。
func (r *Runtime) Invoke(task meta.ContractTask) (interface{}, error) {
	if task.Method == "" {
		return nil, ErrInvalidCall
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := newContext(r.opts.Name, r.opts.Address, task)
	c.print()

	if task.Method == initMethod {
		if !c.Value.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrNotPayable, task.Method)
		}
		return nil, r.initialize(c)
	}

	m, ok := methods[task.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, task.Method)
	}
	if !m.payable && !c.Value.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrNotPayable, task.Method)
	}
	if r.state == nil {
		return nil, ErrNotInitialized
	}

	if !m.mutating {
		out, err := m.call(&c, r.state)
		if err != nil {
			return nil, err
		}
		return out.result, nil
	}

	if err := r.checkCaller(c); err != nil {
		return nil, err
	}
	if !r.accounts.CanTransfer(c.Caller, c.Value) {
		return nil, ErrInsufficientBalance
	}

	next := r.state.Clone()
	out, err := m.call(&c, next)
	if err != nil {
		return nil, err
	}

	// 附带的转账先进入合约账户
	ledger := r.accounts
	if !c.Value.IsZero() {
		ledger = r.accounts.Clone()
		if err := ledger.Move(c.Caller, c.Address, c.Value); err != nil {
			return nil, err
		}
	}
	if err := commit(r.db, next, ledger); err != nil {
		return nil, err
	}
	r.state = next
	r.accounts = ledger

	if out.transfer != nil {
		r.execute(c, out)
	}
	return out.result, nil
}

// checkCaller 调用者身份未经签名校验，faucet 和合约账户不能作为调用者
func (r *Runtime) checkCaller(c context) error {
	if c.Caller == "" {
		return fmt.Errorf("%w: empty caller", ErrInvalidCall)
	}
	if c.Caller == r.opts.Address || c.Caller == common.FaucetAccountAddress {
		return fmt.Errorf("%w: %s", ErrReservedCaller, c.Caller)
	}
	return nil
}

func (r *Runtime) initialize(c context) error {
	if err := r.checkCaller(c); err != nil {
		return err
	}
	if r.state != nil {
		return fundraiser.ErrAlreadyInitialized
	}
	state := fundraiser.New()
	if err := commit(r.db, state, r.accounts); err != nil {
		return err
	}
	r.state = state
	log.Infof("合约 %s 已由 %s 初始化", c.Name, c.Caller)
	return nil
}

// execute 在状态提交后执行转账。转账失败不回滚合约记账，只记录失败回执。
func (r *Runtime) execute(c context, out outcome) {
	t := out.transfer
	receipt := meta.TransferReceipt{
		FundraiserID: out.fundraiserID,
		From:         c.Address,
		To:           t.To,
		Amount:       t.Amount,
		Status:       meta.StatusSuccess,
		Timestamp:    time.Now().UnixNano(),
	}
	if err := r.accounts.Transfer(c.Address, t.To, t.Amount); err != nil {
		log.Errorf("向 %s 转账 %s 失败: %s", t.To, t.Amount, err)
		receipt.Status = meta.StatusFailed
		receipt.Error = err.Error()
	}
	r.publish(receipt)
}

func (r *Runtime) publish(receipt meta.TransferReceipt) {
	if r.opts.Outbox == nil {
		log.Infof("转账回执: %+v", receipt)
		return
	}
	bs, err := json.Marshal(receipt)
	if err != nil {
		log.Errorf("receipt marshal error: %s", err)
		return
	}
	if err := r.opts.Outbox.PushToList(r.opts.ReceiptKey, string(bs)); err != nil {
		log.Errorf("receipt publish error: %s", err)
	}
}

// Receipts 读取已发布的转账回执
func (r *Runtime) Receipts() ([]meta.TransferReceipt, error) {
	if r.opts.Outbox == nil {
		return nil, ErrOutboxDisabled
	}
	list, err := r.opts.Outbox.GetList(r.opts.ReceiptKey)
	if err != nil {
		return nil, err
	}
	receipts := make([]meta.TransferReceipt, 0, len(list))
	for _, item := range list {
		var receipt meta.TransferReceipt
		if err := json.Unmarshal([]byte(item), &receipt); err != nil {
			log.Warningf("skip malformed receipt: %s", err)
			continue
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

// RegisterAccount 注册普通账户，初始余额由 faucet 账户转入
func (r *Runtime) RegisterAccount(address string) (meta.Account, error) {
	if address == "" {
		return meta.Account{}, fmt.Errorf("%w: empty address", ErrInvalidCall)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts.Register(address, common.FaucetAccountAddress, r.opts.InitBalance)
}

func (r *Runtime) GetAccount(address string) (meta.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.accounts.ContainsAddress(address) {
		return meta.Account{}, false
	}
	return r.accounts.GetAccount(address), true
}

func (r *Runtime) GetAllAccounts() []meta.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []meta.Account{}
	for _, address := range r.accounts.GetTotalAddress() {
		all = append(all, r.accounts.GetAccount(address))
	}
	return all
}
