/* This file was part of the google/gousb project, copied to this project
 * to get around private package issues.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * Copyright 2024 SUSE, LLC.
 *
 */

package usbid

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harvester/typec/pkg/util/gousb"
)

// DefaultPaths are the usb.ids locations used by common distributions, in
// the order they are tried.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// ErrNoDatabase is returned when none of the candidate files could be read.
var ErrNoDatabase = errors.New("no usb.ids database found")

var (
	mu      sync.RWMutex
	once    sync.Once
	vendors map[gousb.ID]*Vendor
)

// Load parses the first readable file among paths, or DefaultPaths when none
// are given, and replaces the loaded mappings.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}

	var errs []error
	for _, path := range paths {
		err := LoadFile(path)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}

	return errors.Join(append([]error{ErrNoDatabase}, errs...)...)
}

// LoadFile parses a single usb.ids file and replaces the loaded mappings.
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ids, _, err := NewParser().ParseIDs(f)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}

	logrus.Debugf("loaded %d usb vendors from %s", len(ids), path)
	mu.Lock()
	vendors = ids
	mu.Unlock()
	return nil
}

// ensureLoaded loads DefaultPaths once, unless a database was already loaded.
func ensureLoaded() {
	once.Do(func() {
		mu.RLock()
		loaded := vendors != nil
		mu.RUnlock()
		if loaded {
			return
		}
		if err := Load(); err != nil {
			logrus.Debugf("usb vendor names unavailable: %v", err)
		}
	})
}

// LookupVendor returns the vendor for the given ID.
func LookupVendor(vendor gousb.ID) (*Vendor, bool) {
	ensureLoaded()
	mu.RLock()
	defer mu.RUnlock()
	v, ok := vendors[vendor]
	return v, ok
}

// VendorName returns the vendor name, or an empty string if it is unknown.
func VendorName(vendor gousb.ID) string {
	if v, ok := LookupVendor(vendor); ok {
		return v.Name
	}
	return ""
}

// DescribeWithVendorAndProduct returns "Product (Vendor)" when both are known.
func DescribeWithVendorAndProduct(vendor, product gousb.ID) string {
	v, ok := LookupVendor(vendor)
	if !ok {
		return fmt.Sprintf("Unknown %s:%s", vendor, product)
	}

	if p, ok := v.Product[product]; ok {
		return fmt.Sprintf("%s (%s)", p, v)
	}

	return fmt.Sprintf("Unknown (%s)", v)
}
