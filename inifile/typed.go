// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReadBool returns the boolean value of key in section. Besides the values
// accepted by strconv.ParseBool, "yes", "on", "no" and "off" are recognized
// regardless of case. A missing or empty value yields defaultValue.
func (d *Document) ReadBool(section, key string, defaultValue bool) (bool, error) {
	v := d.ReadValue(section, key)
	if v == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("read %s: %w", describeKey(section, key), err)
	}
	return b, nil
}

// ReadInt returns the integer value of key in section. The value may use the
// base prefixes accepted by strconv.ParseInt with base 0. A missing or empty
// value yields defaultValue.
func (d *Document) ReadInt(section, key string, defaultValue int64) (int64, error) {
	v := d.ReadValue(section, key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("read %s: %w", describeKey(section, key), err)
	}
	return i, nil
}

// ReadFloat returns the floating-point value of key in section. A missing or
// empty value yields defaultValue.
func (d *Document) ReadFloat(section, key string, defaultValue float64) (float64, error) {
	v := d.ReadValue(section, key)
	if v == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("read %s: %w", describeKey(section, key), err)
	}
	return f, nil
}

// ReadDuration returns the value of key in section parsed by
// time.ParseDuration. A missing or empty value yields defaultValue.
func (d *Document) ReadDuration(section, key string, defaultValue time.Duration) (time.Duration, error) {
	v := d.ReadValue(section, key)
	if v == "" {
		return defaultValue, nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue, fmt.Errorf("read %s: %w", describeKey(section, key), err)
	}
	return dur, nil
}

// WriteBool sets key in section to "true" or "false".
func (d *Document) WriteBool(section, key string, value bool) {
	d.WriteKeyValue(section, key, strconv.FormatBool(value))
}

// WriteInt sets key in section to the decimal form of value.
func (d *Document) WriteInt(section, key string, value int64) {
	d.WriteKeyValue(section, key, strconv.FormatInt(value, 10))
}

// WriteFloat sets key in section to the shortest form of value that reads
// back exactly.
func (d *Document) WriteFloat(section, key string, value float64) {
	d.WriteKeyValue(section, key, strconv.FormatFloat(value, 'g', -1, 64))
}

// WriteDuration sets key in section to value.String().
func (d *Document) WriteDuration(section, key string, value time.Duration) {
	d.WriteKeyValue(section, key, value.String())
}

func describeKey(section, key string) string {
	if section == "" {
		return key
	}
	return "[" + section + "] " + key
}
