package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ssgreg/repeat"
	"gopkg.in/gorp.v2"
)

//ErrPoolExhausted is returned by Acquire when no healthy session can be
//obtained after retrying.
var ErrPoolExhausted = errors.New("connection pool exhausted")

const acquireRetry = 3

//Pool hands out healthy database sessions to worker threads. Sessions run
//with autocommit on; each acquired session belongs to exactly one caller
//until released.
type Pool struct {
	db     *sql.DB
	DbMap  *gorp.DbMap
	tables map[model.DBTab]*gorp.TableMap
}

//Session is a dedicated connection checked out of the pool.
type Session struct {
	conn   *sql.Conn
	closed bool
}

//Acquire blocks until a session passing a liveness probe is available,
//retrying with backoff before failing with ErrPoolExhausted.
func (p *Pool) Acquire(ctx context.Context) (s *Session, e error) {
	op := func(c int) error {
		conn, err := p.db.Conn(ctx)
		if err != nil {
			logrus.Warnf("#%d failed to obtain connection: %+v", c, err)
			return repeat.HintTemporary(err)
		}
		var one int
		if err = conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
			logrus.Warnf("#%d connection failed liveness probe: %+v", c, err)
			conn.Close()
			return repeat.HintTemporary(err)
		}
		s = &Session{conn: conn}
		return nil
	}
	e = repeat.Repeat(
		repeat.FnWithCounter(op),
		repeat.StopOnSuccess(),
		repeat.LimitMaxTries(acquireRetry),
		repeat.WithDelay(
			repeat.FullJitterBackoff(500*time.Millisecond).WithMaxDelay(10*time.Second).Set(),
		),
	)
	if e != nil {
		return nil, errors.Wrapf(ErrPoolExhausted, "%+v", e)
	}
	return
}

//Release rolls back anything in flight and returns the session to the
//pool. Safe to call more than once.
func (p *Pool) Release(s *Session) {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, e := s.conn.ExecContext(ctx, "ROLLBACK"); e != nil {
		logrus.Debugf("rollback on release: %+v", e)
	}
	util.CheckErrNop(s.conn.Close(), "failed to close session")
}

//Exec runs a statement on this session.
func (s *Session) Exec(query string, args ...interface{}) (sql.Result, error) {
	return s.conn.ExecContext(context.Background(), query, args...)
}

//SelectStr returns the first column of the first row as a string,
//empty when the result is NULL or no row matches.
func (s *Session) SelectStr(query string, args ...interface{}) (v string, e error) {
	var ns sql.NullString
	e = s.conn.QueryRowContext(context.Background(), query, args...).Scan(&ns)
	if e == sql.ErrNoRows {
		return "", nil
	}
	if e != nil {
		return "", errors.WithStack(e)
	}
	if ns.Valid {
		v = ns.String
	}
	return
}

//SelectStrs returns the first column of every row.
func (s *Session) SelectStrs(query string, args ...interface{}) (vs []string, e error) {
	rows, e := s.conn.QueryContext(context.Background(), query, args...)
	if e != nil {
		return nil, errors.WithStack(e)
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if e = rows.Scan(&v); e != nil {
			return nil, errors.WithStack(e)
		}
		vs = append(vs, v)
	}
	return vs, errors.WithStack(rows.Err())
}

//SelectInt returns the first column of the first row as an int64.
func (s *Session) SelectInt(query string, args ...interface{}) (v int64, e error) {
	e = s.conn.QueryRowContext(context.Background(), query, args...).Scan(&v)
	if e == sql.ErrNoRows {
		return 0, nil
	}
	return v, errors.WithStack(e)
}
