package util

import (
	"io/ioutil"
	"net/http"
	"time"

	"github.com/stockagent/datapipe/conf"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

//HTTPGet initiates HTTP get request and returns its response.
//If conf.Args.Network.MasterProxyAddr is set, the request goes through
//that socks5 proxy.
func HTTPGet(link string, headers map[string]string) (res *http.Response, e error) {
	req, e := http.NewRequest(http.MethodGet, link, nil)
	if e != nil {
		return nil, errors.WithStack(e)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Connection", "close")
	for k, hv := range headers {
		req.Header.Set(k, hv)
	}
	if len(req.Header.Get("User-Agent")) == 0 {
		req.Header.Set("User-Agent", conf.Args.Network.DefaultUserAgent)
	}

	timeout := time.Second * time.Duration(conf.Args.Network.HTTPTimeout)
	var client *http.Client
	if pa := conf.Args.Network.MasterProxyAddr; pa != "" {
		dialer, e := proxy.SOCKS5("tcp", pa, nil, proxy.Direct)
		if e != nil {
			logrus.Warnf("can't create socks5 proxy dialer: %+v", e)
			return nil, errors.WithStack(e)
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{Dial: dialer.Dial},
		}
	} else {
		client = &http.Client{Timeout: timeout}
	}

	res, e = client.Do(req)
	if e != nil {
		return nil, errors.WithStack(e)
	}
	return
}

//HTTPGetBytes fetches the url and returns the full response body.
func HTTPGetBytes(link string, headers map[string]string) (body []byte, e error) {
	res, e := HTTPGet(link, headers)
	if e != nil {
		return nil, e
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusInternalServerError {
		return nil, errors.Errorf("server error %d for %s", res.StatusCode, link)
	}
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d for %s", res.StatusCode, link)
	}
	body, e = ioutil.ReadAll(res.Body)
	if e != nil {
		return nil, errors.WithStack(e)
	}
	return
}
