package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/lingocli/lingo/internal/urls"
)

// GetDetails fetches structured metadata for a named API call. params must
// carry "hostname" plus whatever the call's path template needs; see
// urls.Expand for the known call names. Transport and parse failures are
// logged at debug severity and returned unchanged, so callers see the
// original classified error.
func (c *Client) GetDetails(ctx context.Context, call string, info ConnectionInfo, params map[string]string) (gjson.Result, error) {
	hostname := params["hostname"]
	if hostname == "" {
		return gjson.Result{}, fmt.Errorf("API call %q: missing hostname parameter", call)
	}

	path, err := urls.Expand(call, params)
	if err != nil {
		return gjson.Result{}, err
	}

	outcome, err := c.Do(ctx, http.MethodGet, hostname, path, info, nil)
	if err != nil {
		c.logger.Debug(err.Error())
		return gjson.Result{}, err
	}

	if !gjson.Valid(outcome.Body) {
		err := fmt.Errorf("invalid JSON from %s%s", hostname, path)
		c.logger.Debug(err.Error())
		return gjson.Result{}, err
	}
	return gjson.Parse(outcome.Body), nil
}
