package fetch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var emTagRx = regexp.MustCompile(`</?em>`)

type newsResp struct {
	Result *struct {
		CMSArticle []struct {
			Title     string `json:"title"`
			Content   string `json:"content"`
			Date      string `json:"date"`
			MediaName string `json:"mediaName"`
			URL       string `json:"url"`
		} `json:"cmsArticleWebOld"`
	} `json:"result"`
}

//News returns recent articles mentioning the stock:
//新闻标题, 新闻内容, 发布时间, 文章来源, 新闻链接.
//Highlight markup in title and content is stripped.
func (p *Provider) News(code string) (*Table, error) {
	param := fmt.Sprintf(`{"uid":"","keyword":"%s","type":["cmsArticleWebOld"],`+
		`"client":"web","clientType":"web","clientVersion":"curr",`+
		`"param":{"cmsArticleWebOld":{"searchScope":"default","sort":"default",`+
		`"pageIndex":1,"pageSize":100,"preTag":"<em>","postTag":"</em>"}}}`, code)
	link := "https://search-api-web.eastmoney.com/search/jam?cb=jQuery&param=" + url.QueryEscape(param)
	body, e := getBody(link)
	if e != nil {
		return nil, e
	}
	payload := string(body)
	if i := strings.Index(payload, "("); i >= 0 {
		payload = payload[i+1:]
	}
	payload = strings.TrimSuffix(strings.TrimSpace(payload), ")")
	var r newsResp
	if e = json.Unmarshal([]byte(payload), &r); e != nil {
		return nil, errors.Wrapf(ErrFatal, "broken news payload for %s: %+v", code, e)
	}
	t := &Table{Cols: []string{"新闻标题", "新闻内容", "发布时间", "文章来源", "新闻链接"}}
	if r.Result == nil {
		return t, nil
	}
	for _, a := range r.Result.CMSArticle {
		t.Rows = append(t.Rows, []string{
			emTagRx.ReplaceAllString(a.Title, ""),
			emTagRx.ReplaceAllString(a.Content, ""),
			a.Date,
			a.MediaName,
			a.URL,
		})
	}
	return t, nil
}
