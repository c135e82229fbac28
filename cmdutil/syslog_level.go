package cmdutil

import (
	"errors"
	"fmt"
	"log/syslog"
	"strconv"
	"strings"
)

// Syslog associated errors.
var (
	ErrInvalidSyslogString = errors.New("invalid syslog string")
)

// SyslogLvl is a syslog priority that can be set from a name ("INFO") or a number ("6").
// It implements pflag.Value.
type SyslogLvl string

// Syslog levels.
const (
	LvlEmerg   SyslogLvl = "EMERG"
	LvlAlert   SyslogLvl = "ALERT"
	LvlCrit    SyslogLvl = "CRIT"
	LvlErr     SyslogLvl = "ERR"
	LvlWarning SyslogLvl = "WARN"
	LvlNotice  SyslogLvl = "NOTICE"
	LvlInfo    SyslogLvl = "INFO"
	LvlDebug   SyslogLvl = "DEBUG"
)

func init() {
	add := func(lvl SyslogLvl, sp syslog.Priority) { lvlToPri[lvl], priToLvl[sp] = sp, lvl }
	add(LvlEmerg, syslog.LOG_EMERG)
	add(LvlAlert, syslog.LOG_ALERT)
	add(LvlCrit, syslog.LOG_CRIT)
	add(LvlErr, syslog.LOG_ERR)
	add(LvlWarning, syslog.LOG_WARNING)
	add(LvlNotice, syslog.LOG_NOTICE)
	add(LvlInfo, syslog.LOG_INFO)
	add(LvlDebug, syslog.LOG_DEBUG)
}

var (
	lvlToPri = make(map[SyslogLvl]syslog.Priority)
	priToLvl = make(map[syslog.Priority]SyslogLvl)
)

func (l *SyslogLvl) String() string {
	if l == nil {
		return ""
	}
	return string(*l)
}

// Set implements pflag.Value.
func (l *SyslogLvl) Set(str string) error {
	if l == nil {
		return nil
	}

	lvl := SyslogLvl(strings.ToUpper(str))
	if _, ok := lvlToPri[lvl]; !ok {
		p, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("%w '%s': %v", ErrInvalidSyslogString, str, err)
		}

		if lvl, ok = priToLvl[syslog.Priority(p)]; !ok {
			return fmt.Errorf("%w '%s'", ErrInvalidSyslogString, str)
		}
	}

	*l = lvl
	return nil
}

// Priority returns the syslog priority, LOG_INFO if unset.
func (l *SyslogLvl) Priority() syslog.Priority {
	if l == nil {
		return syslog.LOG_INFO
	}
	if p, ok := lvlToPri[*l]; ok {
		return p
	}
	return syslog.LOG_INFO
}

// Type implements pflag.Value.
func (l *SyslogLvl) Type() string {
	return "SyslogLvl"
}
