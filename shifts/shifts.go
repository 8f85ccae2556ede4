package shifts

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/gateway"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const routeRequestSwap = "/shift/request-swap"

// Service wraps the shift endpoints of the business API.
type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// RequestSwap asks for employeeID's shift to be swapped to shiftID. Both IDs
// travel as query parameters; the request has no body.
func (s *Service) RequestSwap(ctx context.Context, employeeID, shiftID int64) error {
	if employeeID <= 0 || shiftID <= 0 {
		return fmt.Errorf("[shifts RequestSwap] %w: both employee id and shift id are required", hrmserrors.ErrMissingField)
	}

	query := url.Values{}
	query.Set("employeeId", strconv.FormatInt(employeeID, 10))
	query.Set("shiftId", strconv.FormatInt(shiftID, 10))

	if _, err := s.client.Post(ctx, routeRequestSwap, query, nil); err != nil {
		return err
	}

	log.Info().Int64("employeeId", employeeID).Int64("shiftId", shiftID).Msg("shift swap requested")
	return nil
}
