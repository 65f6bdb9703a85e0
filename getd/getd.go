package getd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/fetch"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"
)

//Env carries the shared collaborators of one ingestion pass. Each
//driver additionally owns a dedicated session for its whole run.
type Env struct {
	Ctx  context.Context
	Pool *db.Pool
	Src  Source
	Stks *model.Stocks
}

type driverFn func(*Env, *db.Session) (int64, error)

var drivers = map[string]driverFn{
	string(model.COMPANY_INFO):      getCompanyInfo,
	string(model.FINANCE_INFO):      getFinanceInfo,
	string(model.INDIVIDUAL_STOCK):  getIndividualStock,
	string(model.STOCK_A_INDICATOR): getStockAIndicator,
	string(model.SECTOR):            getSector,
	string(model.STOCK_NEWS):        getStockNews,
	string(model.ANALYST):           getAnalyst,
	string(model.TECH1):             getTech1,
	string(model.TECH2):             getTech2,
}

//DataTypes returns the known dataset names, sorted.
func DataTypes() []string {
	ns := make([]string, 0, len(drivers))
	for n := range drivers {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

type passResult struct {
	dataset string
	rows    int64
	dur     time.Duration
	err     error
}

//Run executes one ingestion pass over the selected datasets. dataTypes
//is a comma list or "all". Drivers run concurrently up to
//conf.Args.MaxWorkers, each on its own pooled session; one driver's
//failure never aborts the others.
func Run(ctx context.Context, dataTypes string, maxSymbols int) error {
	start := time.Now()
	selected, e := selectDrivers(dataTypes)
	if e != nil {
		return e
	}

	if busy, e := util.CPUUsage(); e == nil && busy > conf.Args.CPUUsageThreshold {
		log.Warnf("cpu usage %.1f%% exceeds threshold %.1f%%, pass may be slow",
			busy, conf.Args.CPUUsageThreshold)
	}

	pool := db.Get()
	s, e := pool.Acquire(ctx)
	if e != nil {
		return e
	}
	src := &fetch.Provider{}
	stks, e := GetStockList(s, src, maxSymbols)
	pool.Release(s)
	if e != nil {
		return e
	}

	env := &Env{Ctx: ctx, Pool: pool, Src: src, Stks: stks}
	results := runDrivers(env, selected)
	reportPass(results)
	recordPass(ctx, pool, passCode(selected), start)

	for _, r := range results {
		if r.err != nil {
			log.Errorf("%s failed: %+v", r.dataset, r.err)
		}
	}
	return nil
}

func selectDrivers(dataTypes string) ([]string, error) {
	if dataTypes == "" || dataTypes == "all" {
		return DataTypes(), nil
	}
	var sel []string
	for _, n := range strings.Split(dataTypes, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := drivers[n]; !ok {
			return nil, errors.Errorf("unknown dataset %q, expecting one of %v", n, DataTypes())
		}
		sel = append(sel, n)
	}
	if len(sel) == 0 {
		return nil, errors.New("no dataset selected")
	}
	return sel, nil
}

func runDrivers(env *Env, selected []string) []passResult {
	var wg sync.WaitGroup
	sem := make(chan struct{}, conf.Args.MaxWorkers)
	results := make([]passResult, len(selected))
	for i, name := range selected {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = runOne(env, name)
		}(i, name)
	}
	wg.Wait()
	return results
}

func runOne(env *Env, name string) (r passResult) {
	r.dataset = name
	start := time.Now()
	defer func() {
		r.dur = time.Since(start)
		if p := recover(); p != nil {
			r.err = errors.Errorf("%s panicked: %+v", name, p)
		}
	}()
	if env.Ctx.Err() != nil {
		r.err = env.Ctx.Err()
		return
	}
	s, e := env.Pool.Acquire(env.Ctx)
	if e != nil {
		r.err = e
		return
	}
	defer env.Pool.Release(s)
	log.Infof("%s started", name)
	r.rows, r.err = drivers[name](env, s)
	if r.err == nil {
		log.Infof("%s finished, %d rows in %s", name, r.rows, time.Since(start).Round(time.Millisecond))
	}
	return
}

func reportPass(results []passResult) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Dataset", "Rows", "Duration", "Status"})
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = fmt.Sprintf("failed: %v", errors.Cause(r.err))
		}
		tw.Append([]string{
			r.dataset,
			fmt.Sprintf("%d", r.rows),
			r.dur.Round(time.Millisecond).String(),
			status,
		})
	}
	tw.Render()
}

//passCode identifies what a pass covered in the stats table. A full
//pass is "all"; a partial one lists its datasets.
func passCode(selected []string) string {
	if len(selected) == len(drivers) {
		return "all"
	}
	return strings.Join(selected, ",")
}

func recordPass(ctx context.Context, pool *db.Pool, code string, start time.Time) {
	s, e := pool.Acquire(ctx)
	if e != nil {
		log.Warnf("failed to record pass stats: %+v", e)
		return
	}
	defer pool.Release(s)
	q, e := global.Dot.Raw("UPSERT_PASS_STATS")
	if e != nil {
		log.Warnf("failed to record pass stats: %+v", e)
		return
	}
	end := time.Now()
	if _, e = s.Exec(q, code,
		start.Format(util.DateTimeFormat), end.Format(util.DateTimeFormat),
		int64(end.Sub(start).Seconds())); e != nil {
		log.Warnf("failed to record pass stats: %+v", e)
	}
}

//pace applies the inter-request rate limit every few symbols. Returns
//false when the pass is cancelled.
func pace(ctx context.Context, i int) bool {
	if ctx.Err() != nil {
		return false
	}
	every := conf.Args.RateLimitEvery
	if every <= 0 || (i+1)%every != 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Duration(conf.Args.RateLimitSleep) * time.Second):
		return true
	}
}

//etlStamp returns the canonical dates stamped onto every written row.
func etlStamp() (etlDate string, bizDate int64) {
	now := time.Now()
	etlDate = now.Format(util.DateTimeFormat)
	bizDate, _ = strconv.ParseInt(now.Format(util.CompactDateFormat), 10, 64)
	return
}
