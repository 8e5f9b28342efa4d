package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"time"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/service/cache"
)

// DefaultMaxBudgetMinorUnits caps the budget so the DP table stays small enough
// for interactive latency (99 999 cents = $999.99).
const DefaultMaxBudgetMinorUnits = 99_999

// unreachable marks DP cells no combination of candidates sums to exactly.
const unreachable = -1

// Rejection explains why an input was refused before any computation.
type Rejection string

const (
	RejectionNone           Rejection = ""
	RejectionInvalidBudget  Rejection = "invalid_budget"
	RejectionBudgetTooLarge Rejection = "budget_too_large"
	RejectionNoPricedItems  Rejection = "no_priced_items"
)

// BalanceOptimizer spends a budget on a catalog as completely as possible.
type BalanceOptimizer interface {
	// Optimize returns false when the input is rejected. A NoSolution result is
	// still a present result.
	Optimize(input model.OptimizationInput) (model.OptimizationResult, bool)
	// Validate reports why Optimize would reject the input, or RejectionNone.
	Validate(input model.OptimizationInput) Rejection
	MaxBudgetMinorUnits() int
	// InvalidateCache clears the result cache, if one is configured.
	InvalidateCache()
}

// Option configures a BalanceOptimizerService.
type Option func(*BalanceOptimizerService)

// BalanceOptimizerService implements BalanceOptimizer with an unbounded
// subset-sum DP over integer minor units. It holds no per-call state; the DP
// tables are allocated for each call and dropped afterwards.
type BalanceOptimizerService struct {
	maxBudget int
	cache     cache.Cache
}

// NewBalanceOptimizerService creates a new BalanceOptimizerService with the given options.
func NewBalanceOptimizerService(opts ...Option) *BalanceOptimizerService {
	s := &BalanceOptimizerService{maxBudget: DefaultMaxBudgetMinorUnits}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxBudget sets the budget ceiling in minor units.
func WithMaxBudget(maxMinorUnits int) Option {
	return func(s *BalanceOptimizerService) {
		if maxMinorUnits > 0 {
			s.maxBudget = maxMinorUnits
		}
	}
}

// WithCache enables an in-memory sharded result cache.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *BalanceOptimizerService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, defaultShards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *BalanceOptimizerService) {
		s.cache = c
	}
}

func (s *BalanceOptimizerService) MaxBudgetMinorUnits() int {
	return s.maxBudget
}

// Validate checks the budget bounds and that at least one item has a positive price.
func (s *BalanceOptimizerService) Validate(input model.OptimizationInput) Rejection {
	if input.BudgetMinorUnits <= 0 {
		return RejectionInvalidBudget
	}
	if input.BudgetMinorUnits > s.maxBudget {
		return RejectionBudgetTooLarge
	}
	for _, item := range input.Items {
		if item.IsPriced() {
			return RejectionNone
		}
	}
	return RejectionNoPricedItems
}

// Optimize validates the input, reserves mandatory quantities, fills the
// remainder with optional items and assembles the result.
func (s *BalanceOptimizerService) Optimize(input model.OptimizationInput) (model.OptimizationResult, bool) {
	if reason := s.Validate(input); reason != RejectionNone {
		metrics.RecordRejection(string(reason))
		return model.OptimizationResult{}, false
	}

	var key string
	if s.cache != nil {
		key = s.fingerprint(input)
		if cached, ok := s.cache.Get(key); ok {
			if cached.BudgetMinorUnits == input.BudgetMinorUnits {
				return cached.Clone(), true
			}
			// written for another input under this key, e.g. by an older release sharing Redis
			s.cache.Invalidate(key)
		}
	}

	start := time.Now()
	result, cells := optimize(input.BudgetMinorUnits, input.Items)
	elapsed := time.Since(start)

	metrics.RecordOptimization(elapsed, string(result.MatchQuality.Kind), cells)
	log := logger.Logger()
	log.Debug().
		Int("budget", input.BudgetMinorUnits).
		Int("items", len(input.Items)).
		Int("cells", cells).
		Str("quality", string(result.MatchQuality.Kind)).
		Dur("duration", elapsed).
		Msg("balance optimized")

	if s.cache != nil {
		s.cache.Set(key, result.Clone())
	}
	return result, true
}

// InvalidateCache clears the result cache.
func (s *BalanceOptimizerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// fingerprint hashes the ceiling, budget and ordered catalog. Item order is
// part of the key because it decides DP tie-breaks.
func (s *BalanceOptimizerService) fingerprint(input model.OptimizationInput) string {
	h := sha256.New()
	buf := make([]byte, 0, 64)
	buf = strconv.AppendInt(buf, int64(s.maxBudget), 10)
	buf = append(buf, '|')
	buf = strconv.AppendInt(buf, int64(input.BudgetMinorUnits), 10)
	_, _ = h.Write(buf)
	for _, item := range input.Items {
		buf = buf[:0]
		buf = append(buf, '|')
		buf = strconv.AppendQuote(buf, item.ID)
		buf = strconv.AppendQuote(buf, item.Name)
		buf = strconv.AppendInt(buf, int64(item.UnitPriceMinorUnits), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(item.MandatoryQuantity), 10)
		_, _ = h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// optimize runs the pipeline on an already validated input. It returns the
// result and the number of DP cells evaluated.
func optimize(budget int, items []model.CatalogItem) (model.OptimizationResult, int) {
	quantities := make([]int, len(items))

	mandatoryTotal, ok := allocateMandatory(budget, items, quantities)
	if !ok {
		return model.NoSolutionResult(budget), 0
	}

	optionalTotal, cells := allocateOptional(budget-mandatoryTotal, items, quantities)

	return assemble(budget, items, quantities, mandatoryTotal+optionalTotal), cells
}

// allocateMandatory writes the required quantity of every priced mandatory
// item into quantities. It reports false when they do not fit in the budget.
func allocateMandatory(budget int, items []model.CatalogItem, quantities []int) (int, bool) {
	total := 0
	for i, item := range items {
		if !item.IsMandatory() || !item.IsPriced() {
			continue
		}
		// price*qty > budget-total, without overflowing the product
		if item.MandatoryQuantity > (budget-total)/item.UnitPriceMinorUnits {
			return 0, false
		}
		total += item.UnitPriceMinorUnits * item.MandatoryQuantity
		quantities[i] = item.MandatoryQuantity
	}
	return total, true
}

// allocateOptional solves the unbounded subset-sum over optional items for
// the largest spend <= remaining and adds the chosen units to quantities.
//
// best[c] is the value reached by a combination summing to exactly c, or
// unreachable. choice[c] is the catalog index of the item that set best[c].
// Candidates are visited in catalog order and only a strictly better value
// replaces the current one, so the first item seen wins ties.
func allocateOptional(remaining int, items []model.CatalogItem, quantities []int) (int, int) {
	if remaining <= 0 {
		return 0, 0
	}

	candidates := make([]int, 0, len(items))
	for i, item := range items {
		if item.MandatoryQuantity == 0 && item.IsPriced() && item.UnitPriceMinorUnits <= remaining {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, 0
	}

	best := make([]int, remaining+1)
	choice := make([]int, remaining+1)
	for c := range best {
		best[c] = unreachable
		choice[c] = unreachable
	}
	best[0] = 0

	for c := 1; c <= remaining; c++ {
		for _, idx := range candidates {
			price := items[idx].UnitPriceMinorUnits
			if price > c || best[c-price] == unreachable {
				continue
			}
			if value := price + best[c-price]; value > best[c] {
				best[c] = value
				choice[c] = idx
			}
		}
	}

	bestAmount := 0
	for c := remaining; c >= 0; c-- {
		if best[c] != unreachable {
			bestAmount = c
			break
		}
	}

	spent := 0
	for c := bestAmount; c > 0; {
		idx := choice[c]
		if idx == unreachable {
			break
		}
		price := items[idx].UnitPriceMinorUnits
		quantities[idx]++
		spent += price
		c -= price
	}

	return spent, (remaining + 1) * len(candidates)
}

// assemble turns per-item quantities into allocations sorted by total
// descending (stable on catalog order) and classifies the match.
func assemble(budget int, items []model.CatalogItem, quantities []int, spent int) model.OptimizationResult {
	allocations := make([]model.SelectedAllocation, 0, len(items))
	for i, qty := range quantities {
		if qty > 0 {
			allocations = append(allocations, model.SelectedAllocation{Item: items[i], Quantity: qty})
		}
	}
	sort.SliceStable(allocations, func(a, b int) bool {
		return allocations[a].TotalMinorUnits() > allocations[b].TotalMinorUnits()
	})

	leftover := budget - spent
	quality := model.NoSolution()
	switch {
	case leftover == 0:
		quality = model.Perfect()
	case spent > 0:
		quality = model.Partial(leftover)
	}

	return model.OptimizationResult{
		BudgetMinorUnits:    budget,
		SelectedAllocations: allocations,
		MatchQuality:        quality,
	}
}
