package fetch

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ssgreg/repeat"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/util"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

//FinanceAbstract scrapes the quarterly finance abstract table. The
//page is GBK encoded. Column names are the page's own Chinese headers,
//报告期 first.
func (p *Provider) FinanceAbstract(code string) (t *Table, e error) {
	link := fmt.Sprintf("http://basic.10jqka.com.cn/new/%s/finance.html", code)
	op := func(c int) error {
		if c > 0 {
			logrus.Warnf("%s retrying finance abstract #%d", code, c)
		}
		res, e := util.HTTPGet(link, map[string]string{"Referer": "http://basic.10jqka.com.cn/"})
		if e != nil {
			return repeat.HintTemporary(e)
		}
		defer res.Body.Close()
		t, e = parseFinanceAbstract(transform.NewReader(res.Body,
			simplifiedchinese.GBK.NewDecoder()))
		if e != nil {
			return repeat.HintStop(errors.Wrapf(ErrFatal, "%s: %+v", code, e))
		}
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
		return nil, errors.Cause(e)
	}
	return t, nil
}

func parseFinanceAbstract(r *transform.Reader) (*Table, error) {
	doc, e := goquery.NewDocumentFromReader(r)
	if e != nil {
		return nil, errors.WithStack(e)
	}
	sel := doc.Find("#main table").First()
	if sel.Length() == 0 {
		return nil, errors.New("finance abstract table not found")
	}
	t := &Table{}
	sel.Find("thead tr th").Each(func(i int, s *goquery.Selection) {
		t.Cols = append(t.Cols, strings.TrimSpace(s.Text()))
	})
	if len(t.Cols) == 0 {
		// some layouts carry headers in the first body row
		sel.Find("tr").First().Find("th,td").Each(func(i int, s *goquery.Selection) {
			t.Cols = append(t.Cols, strings.TrimSpace(s.Text()))
		})
	}
	if len(t.Cols) == 0 {
		return nil, errors.New("finance abstract headers not found")
	}
	sel.Find("tbody tr").Each(func(i int, s *goquery.Selection) {
		var row []string
		s.Find("th,td").Each(func(j int, c *goquery.Selection) {
			row = append(row, strings.TrimSpace(c.Text()))
		})
		if len(row) == len(t.Cols) {
			t.Rows = append(t.Rows, row)
		}
	})
	if t.Empty() {
		return nil, errors.New("finance abstract carries no rows")
	}
	return t, nil
}
