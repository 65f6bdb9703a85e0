package global

import (
	"fmt"
	"io"
	"os"

	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/util"

	"github.com/gchaincl/dotsql"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	//Log is the process-wide logger.
	Log = logrus.New()
	//Dot holds the named SQL statements loaded from sql/sql.txt.
	Dot *dotsql.DotSql
)

const (
	//JobCapacity bounds the orchestrator's task channel.
	JobCapacity = 64
)

func init() {
	var e error
	sqlp := "sql/sql.txt"
	if conf.Args.SQLFileLocation != "" {
		sqlp = fmt.Sprintf("%s/sql.txt", conf.Args.SQLFileLocation)
	}
	if _, e = os.Stat(sqlp); e != nil {
		sqlp = "../sql/sql.txt"
	}
	Dot, e = dotsql.LoadFromFile(sqlp)
	util.CheckErr(e, "failed to init dotsql")

	switch conf.Args.LogLevel {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	case "panic":
		Log.SetLevel(logrus.PanicLevel)
	}

	Log.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})
	logFile, e := os.OpenFile(conf.Args.LogFile, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0666)
	if e != nil {
		Log.Panicln("failed to open log file", e)
	}
	mw := io.MultiWriter(os.Stdout, logFile)
	Log.SetOutput(mw)
}
