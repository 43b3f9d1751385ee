// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1309

// ConfigurationError is returned by New when the requested geometry or the
// transport cannot drive a panel of this family. It is raised before any
// bus activity; there is no recovery beyond fixing the configuration.
//
// Transport failures are not wrapped: errors from the SPI connection and
// the control lines propagate to the caller as-is.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "ssd1309: " + e.Msg
}
