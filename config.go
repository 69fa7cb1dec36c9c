/*
Copyright © 2019 the eqdsk authors.
This file is part of eqdsk.

eqdsk is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

eqdsk is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with eqdsk.  If not, see <http://www.gnu.org/licenses/>.
*/

package eqdsk

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/eqdsk/aeqdsk"
	"github.com/spatialmodel/eqdsk/cloud"
	"github.com/spatialmodel/eqdsk/fortran"
	"github.com/spatialmodel/eqdsk/geqdsk"
	"github.com/spatialmodel/eqdsk/peqdsk"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the options used to read and write files.
type Config struct {
	// Concurrency is the largest number of files read at once.
	Concurrency int

	GEQDSK geqdsk.Options
	AEQDSK aeqdsk.Options
	PEQDSK peqdsk.Options

	Log   *logrus.Logger
	Store *cloud.Store
}

// defaults holds the default value of every configuration key.
var defaults = map[string]interface{}{
	"log_level":                    "info",
	"concurrency":                  runtime.NumCPU(),
	"store.retries":                cloud.DefaultRetries,
	"geqdsk.data_format":           geqdsk.DefaultDataFormat.String(),
	"geqdsk.header_format":         geqdsk.DefaultHeaderFormat.String(),
	"geqdsk.counts_format":         geqdsk.DefaultCountsFormat.String(),
	"geqdsk.cocos":                 1,
	"geqdsk.derivatives":           "unspecified",
	"geqdsk.label":                 "",
	"geqdsk.shot":                  0,
	"geqdsk.time_ms":               0,
	"geqdsk.date":                  "",
	"aeqdsk.data_format":           aeqdsk.DefaultDataFormat.String(),
	"aeqdsk.extended_sizes_format": aeqdsk.DefaultExtendedSizesFormat.String(),
	"aeqdsk.time_format":           aeqdsk.DefaultTimeFormat.String(),
	"peqdsk.precision":             peqdsk.DefaultPrecision,
}

// NewViper returns a configuration holding the defaults. Any key can be
// overridden by an environment variable named after it with the prefix
// EQDSK_, for example EQDSK_GEQDSK_COCOS for geqdsk.cocos.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("EQDSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

// ReadConfig reads the configuration file at path, in any format viper
// understands, on top of the defaults. An empty path gives the defaults
// and environment overrides only.
func ReadConfig(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("eqdsk: reading configuration file: %v", err)
		}
	}
	return LoadConfig(v)
}

// LoadConfig converts v into a Config. Format descriptors are parsed here,
// so a malformed one is reported before any file is read.
func LoadConfig(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("eqdsk: configuration variable log_level: %v", err)
	}
	log := logrus.New()
	log.SetLevel(level)

	c := &Config{Log: log}
	if c.Concurrency, err = cast.ToIntE(v.Get("concurrency")); err != nil {
		return nil, fmt.Errorf("eqdsk: configuration variable concurrency: %v", err)
	}
	if c.Concurrency < 1 {
		return nil, fmt.Errorf("eqdsk: configuration variable concurrency=%d but should be >0", c.Concurrency)
	}
	c.Store = cloud.NewStore(log)
	if c.Store.Retries, err = cast.ToIntE(v.Get("store.retries")); err != nil {
		return nil, fmt.Errorf("eqdsk: configuration variable store.retries: %v", err)
	}
	if c.Store.Retries == 0 {
		c.Store.Retries = -1
	}

	formats := []struct {
		key string
		f   **fortran.Format
	}{
		{"geqdsk.data_format", &c.GEQDSK.DataFormat},
		{"geqdsk.header_format", &c.GEQDSK.HeaderFormat},
		{"geqdsk.counts_format", &c.GEQDSK.CountsFormat},
		{"aeqdsk.data_format", &c.AEQDSK.DataFormat},
		{"aeqdsk.extended_sizes_format", &c.AEQDSK.ExtendedSizesFormat},
		{"aeqdsk.time_format", &c.AEQDSK.TimeFormat},
	}
	for _, f := range formats {
		if *f.f, err = fortran.ParseFormat(v.GetString(f.key)); err != nil {
			return nil, fmt.Errorf("eqdsk: configuration variable %s: %w", f.key, err)
		}
	}

	ints := []struct {
		key string
		i   *int
	}{
		{"geqdsk.cocos", &c.GEQDSK.COCOS},
		{"geqdsk.shot", &c.GEQDSK.Shot},
		{"geqdsk.time_ms", &c.GEQDSK.TimeMS},
		{"peqdsk.precision", &c.PEQDSK.Precision},
	}
	for _, i := range ints {
		if *i.i, err = cast.ToIntE(v.Get(i.key)); err != nil {
			return nil, fmt.Errorf("eqdsk: configuration variable %s: %v", i.key, err)
		}
	}
	if c.GEQDSK.COCOS < 1 {
		return nil, fmt.Errorf("eqdsk: configuration variable geqdsk.cocos=%d but should be >0", c.GEQDSK.COCOS)
	}
	if c.PEQDSK.Precision < 1 {
		return nil, fmt.Errorf("eqdsk: configuration variable peqdsk.precision=%d but should be >0", c.PEQDSK.Precision)
	}

	if c.GEQDSK.Derivatives, err = geqdsk.ParseDerivatives(v.GetString("geqdsk.derivatives")); err != nil {
		return nil, fmt.Errorf("eqdsk: configuration variable geqdsk.derivatives: %v", err)
	}
	c.GEQDSK.Label = v.GetString("geqdsk.label")
	if d := v.GetString("geqdsk.date"); d != "" {
		if c.GEQDSK.Date, err = time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("eqdsk: configuration variable geqdsk.date: %v", err)
		}
	}

	c.GEQDSK.Log = log
	c.AEQDSK.Log = log
	c.PEQDSK.Log = log
	return c, nil
}
