package esplora

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/orangesats/orangesats-wallet/pkg/explorer"
)

// confirmation targets in blocks mapped to the speed buckets exposed to
// the rest of the application
const (
	fastestTarget = "1"
	fastTarget    = "3"
	normalTarget  = "6"
	slowTarget    = "144"
)

// minRelayFeeRate is the floor applied when the endpoint omits a target.
var minRelayFeeRate = decimal.NewFromInt(1)

func (e *esplora) GetFeeEstimates() (*explorer.FeeEstimates, error) {
	url := fmt.Sprintf("%s/fee-estimates", e.apiURL)
	status, resp, err := e.request("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	return parseFeeEstimates(resp)
}

func parseFeeEstimates(resp string) (*explorer.FeeEstimates, error) {
	estimatesByTarget := map[string]float64{}
	if err := json.Unmarshal([]byte(resp), &estimatesByTarget); err != nil {
		return nil, err
	}

	rateForTarget := func(target string) decimal.Decimal {
		rate, ok := estimatesByTarget[target]
		if !ok {
			return minRelayFeeRate
		}
		return decimal.NewFromFloat(rate)
	}

	return &explorer.FeeEstimates{
		Slow:    rateForTarget(slowTarget),
		Normal:  rateForTarget(normalTarget),
		Fast:    rateForTarget(fastTarget),
		Fastest: rateForTarget(fastestTarget),
	}, nil
}
