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

package gousb

import "fmt"

// ID represents a vendor or product ID. USB PD reuses the USB-IF vendor ID
// space for the ID header and for SVIDs.
type ID uint16

// String returns the ID as four hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%04x", uint16(id))
}

// Class represents a USB-IF (Implementers Forum) class or subclass code.
type Class uint8

// Protocol is the interface class protocol, qualified by the values
// of interface class and subclass.
type Protocol uint8
