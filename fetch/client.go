package fetch

import (
	"encoding/json"
	"time"

	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ssgreg/repeat"
)

//ErrFatal marks upstream responses that will not improve on retry
//(malformed payload, unknown symbol). Callers skip and move on.
var ErrFatal = errors.New("fatal upstream response")

//Provider is the upstream market-data client. One method per logical
//dataset; all retries and per-call timeouts live here.
type Provider struct{}

//fetchBody performs the actual HTTP round trip. Swappable in tests.
var fetchBody = util.HTTPGetBytes

//getBody fetches the url, retrying transient failures with backoff up
//to conf.Args.DefaultRetry tries.
func getBody(url string) (body []byte, e error) {
	op := func(c int) error {
		b, err := fetchBody(url, nil)
		if err != nil {
			logrus.Debugf("#%d %s: %+v", c, url, err)
			return repeat.HintTemporary(err)
		}
		body = b
		return nil
	}
	e = repeat.Repeat(
		repeat.FnWithCounter(op),
		repeat.StopOnSuccess(),
		repeat.LimitMaxTries(conf.Args.DefaultRetry),
		repeat.WithDelay(
			repeat.FullJitterBackoff(500*time.Millisecond).WithMaxDelay(10*time.Second).Set(),
		),
	)
	if e != nil {
		return nil, errors.Wrapf(e, "failed to fetch %s", url)
	}
	return
}

//getJSON fetches url and decodes the body into out. Transient HTTP
//failures are retried inside getBody; a body that fails to decode is
//fatal and not retried.
func getJSON(url string, out interface{}) error {
	body, e := getBody(url)
	if e != nil {
		return e
	}
	if e = json.Unmarshal(body, out); e != nil {
		return errors.Wrapf(ErrFatal, "undecodable payload from %s: %+v", url, e)
	}
	return nil
}
