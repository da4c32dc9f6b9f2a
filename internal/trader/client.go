// Package trader is the top-level client: it reads pool state, screens
// requests through the guards, builds operation descriptors, journals
// them, and hands approved descriptors to the submitter.
package trader

import (
	"context"
	"math/big"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"poolQuote/internal/bpool"
	"poolQuote/internal/guard"
	"poolQuote/internal/model"
	"poolQuote/internal/quote"
	"poolQuote/internal/storage"
)

// Accessor is the pool state surface the client reads from.
type Accessor interface {
	FetchSnapshot(ctx context.Context, pool common.Address) (*model.Snapshot, error)
	ShareBalance(ctx context.Context, pool, holder common.Address, block uint64) (math.LegacyDec, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	TokenMeta(ctx context.Context, token common.Address) (model.TokenMeta, error)
}

// Submitter sends approved descriptors to the chain.
type Submitter interface {
	Submit(ctx context.Context, op model.Operation) (*model.Receipt, error)
	Setup(ctx context.Context, pool common.Address, plan model.SetupPlan) ([]model.Receipt, error)
	Approve(ctx context.Context, token, spender common.Address, amount string) (*model.Receipt, error)
	From() common.Address
}

// Client quotes and executes pool operations. The submitter may be nil
// for read-only quoting; the journal may be nil to disable journaling.
type Client struct {
	accessor  Accessor
	submitter Submitter
	journal   storage.Journal
	logger    *zap.Logger
}

func NewClient(accessor Accessor, submitter Submitter, journal storage.Journal, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		accessor:  accessor,
		submitter: submitter,
		journal:   journal,
		logger:    logger,
	}
}

func requireAddress(name, addr string) error {
	if !common.IsHexAddress(addr) {
		return model.ErrValidation.Wrapf("%s %q is not a valid address", name, addr)
	}
	return nil
}

func (c *Client) snapshot(ctx context.Context, pool string) (*model.Snapshot, error) {
	if err := requireAddress("pool", pool); err != nil {
		return nil, err
	}
	return c.accessor.FetchSnapshot(ctx, common.HexToAddress(pool))
}

// heldShares returns the sender's share balance at the snapshot block,
// or a nil dec when no signing key is configured.
func (c *Client) heldShares(ctx context.Context, snap *model.Snapshot) (math.LegacyDec, error) {
	if c.submitter == nil {
		return math.LegacyDec{}, nil
	}
	return c.accessor.ShareBalance(ctx, common.HexToAddress(snap.Pool), c.submitter.From(), snap.Block)
}

// record appends to the journal. Journal failures are logged, not
// surfaced; a quote is still valid when the journal is unavailable.
func (c *Client) record(ctx context.Context, rec model.Record) {
	if c.journal == nil {
		return
	}
	if err := c.journal.PutRecordBatch(ctx, []model.Record{rec}); err != nil {
		c.logger.Warn("journal write failed", zap.Error(err))
	}
}

func (c *Client) recordQuote(ctx context.Context, op model.Operation) {
	c.record(ctx, model.Record{
		Kind:      model.RecordQuote,
		CreatedAt: time.Now().UTC(),
		Operation: &op,
	})
}

// SpotPrice quotes the marginal pair price from a fresh snapshot.
func (c *Client) SpotPrice(ctx context.Context, pool, tokenIn, tokenOut string) (guard.PriceQuote, *model.Snapshot, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return guard.PriceQuote{}, nil, err
	}
	q, err := guard.SpotPrice(snap, tokenIn, tokenOut)
	if err != nil {
		return guard.PriceQuote{}, nil, err
	}
	c.logger.Debug("spot price quoted",
		zap.String("pool", snap.Pool),
		zap.String("price", q.Price.String()),
		zap.Uint64("block", snap.Block))
	return q, snap, nil
}

// QuoteSwapExactIn quotes paying amountIn of tokenIn for tokenOut.
func (c *Client) QuoteSwapExactIn(ctx context.Context, pool, tokenIn, tokenOut string, amountIn, minOut, maxPrice math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.SwapExactIn(snap, tokenIn, tokenOut, amountIn, minOut)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.SwapExactIn(snap, q, minOut, maxPrice)
	c.recordQuote(ctx, op)
	return op, nil
}

// QuoteSwapExactOut quotes receiving exactly amountOut of tokenOut.
func (c *Client) QuoteSwapExactOut(ctx context.Context, pool, tokenIn, tokenOut string, amountOut, maxIn, maxPrice math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.SwapExactOut(snap, tokenIn, tokenOut, amountOut, maxIn)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.SwapExactOut(snap, q, maxIn, maxPrice)
	c.recordQuote(ctx, op)
	return op, nil
}

// QuoteJoinSingleIn quotes a single-asset deposit of amountIn.
func (c *Client) QuoteJoinSingleIn(ctx context.Context, pool, token string, amountIn, minPoolOut math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.JoinSingleIn(snap, token, amountIn, minPoolOut)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.JoinSingleIn(snap, q, minPoolOut)
	c.recordQuote(ctx, op)
	return op, nil
}

// QuoteJoinPoolOut quotes minting exactly poolOut shares from one token.
func (c *Client) QuoteJoinPoolOut(ctx context.Context, pool, token string, poolOut, maxIn math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.JoinPoolOut(snap, token, poolOut, maxIn)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.JoinPoolOut(snap, q, maxIn)
	c.recordQuote(ctx, op)
	return op, nil
}

// QuoteExitPoolIn quotes burning poolIn shares for a single token. With
// a signing key configured, the burn is checked against the sender's
// share balance at the snapshot block.
func (c *Client) QuoteExitPoolIn(ctx context.Context, pool, token string, poolIn, minOut math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	held, err := c.heldShares(ctx, snap)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.ExitPoolIn(snap, token, poolIn, minOut, held)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.ExitPoolIn(snap, q, minOut)
	c.recordQuote(ctx, op)
	return op, nil
}

// QuoteExitSingleOut quotes withdrawing exactly amountOut of one token.
func (c *Client) QuoteExitSingleOut(ctx context.Context, pool, token string, amountOut, maxPoolIn math.LegacyDec) (model.Operation, error) {
	snap, err := c.snapshot(ctx, pool)
	if err != nil {
		return model.Operation{}, err
	}
	held, err := c.heldShares(ctx, snap)
	if err != nil {
		return model.Operation{}, err
	}
	q, err := guard.ExitSingleOut(snap, token, amountOut, maxPoolIn, held)
	if err != nil {
		return model.Operation{}, err
	}
	op := quote.ExitSingleOut(snap, q, maxPoolIn)
	c.recordQuote(ctx, op)
	return op, nil
}

// PlanCreation screens a two-token pool blueprint and journals the
// resulting setup plan.
func (c *Client) PlanCreation(ctx context.Context, namedToken, derivedToken string, amount, weight, swapFee math.LegacyDec) (model.SetupPlan, error) {
	if err := requireAddress("named token", namedToken); err != nil {
		return model.SetupPlan{}, err
	}
	if err := requireAddress("derived token", derivedToken); err != nil {
		return model.SetupPlan{}, err
	}
	creation, err := guard.PlanCreation(namedToken, derivedToken, amount, weight, swapFee)
	if err != nil {
		return model.SetupPlan{}, err
	}
	plan := quote.Setup(creation)
	c.record(ctx, model.Record{
		Kind:      model.RecordSetup,
		CreatedAt: time.Now().UTC(),
		Plan:      &plan,
	})
	return plan, nil
}

// Execute submits an operation descriptor and journals the outcome.
func (c *Client) Execute(ctx context.Context, op model.Operation) (*model.Receipt, error) {
	if c.submitter == nil {
		return nil, model.ErrValidation.Wrap("no signing key configured")
	}

	rec, err := c.submitter.Submit(ctx, op)

	journalRec := model.Record{
		Kind:      model.RecordSubmit,
		CreatedAt: time.Now().UTC(),
		Operation: &op,
		Receipt:   rec,
	}
	if err != nil {
		journalRec.Error = err.Error()
	}
	c.record(ctx, journalRec)

	return rec, err
}

// Setup executes a creation plan against a deployed pool and journals
// the outcome. The returned receipts cover the steps that ran.
func (c *Client) Setup(ctx context.Context, pool string, plan model.SetupPlan) ([]model.Receipt, error) {
	if c.submitter == nil {
		return nil, model.ErrValidation.Wrap("no signing key configured")
	}
	if err := requireAddress("pool", pool); err != nil {
		return nil, err
	}

	plan.Pool = common.HexToAddress(pool).Hex()
	receipts, err := c.submitter.Setup(ctx, common.HexToAddress(pool), plan)

	journalRec := model.Record{
		Kind:      model.RecordSetup,
		CreatedAt: time.Now().UTC(),
		Plan:      &plan,
	}
	if len(receipts) > 0 {
		last := receipts[len(receipts)-1]
		journalRec.Receipt = &last
	}
	if err != nil {
		journalRec.Error = err.Error()
	}
	c.record(ctx, journalRec)

	return receipts, err
}

// EnsureAllowance approves the spender for amount of token unless the
// current allowance already covers it. Returns a nil receipt when no
// approval was needed.
func (c *Client) EnsureAllowance(ctx context.Context, token, spender string, amount math.LegacyDec) (*model.Receipt, error) {
	if c.submitter == nil {
		return nil, model.ErrValidation.Wrap("no signing key configured")
	}
	if err := requireAddress("token", token); err != nil {
		return nil, err
	}
	if err := requireAddress("spender", spender); err != nil {
		return nil, err
	}

	tokenAddr := common.HexToAddress(token)
	spenderAddr := common.HexToAddress(spender)

	meta, err := c.accessor.TokenMeta(ctx, tokenAddr)
	if err != nil {
		return nil, err
	}
	needed := bpool.WeiCeil(amount, meta.Decimals)

	current, err := c.accessor.Allowance(ctx, tokenAddr, c.submitter.From(), spenderAddr)
	if err != nil {
		return nil, err
	}
	if current.Cmp(needed) >= 0 {
		c.logger.Debug("allowance sufficient",
			zap.String("token", token),
			zap.String("current", current.String()))
		return nil, nil
	}

	return c.submitter.Approve(ctx, tokenAddr, spenderAddr, amount.String())
}
