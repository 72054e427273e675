package pd

import (
	"github.com/harvester/typec/pkg/bitfield"
)

var (
	noYes                = []string{"No", "Yes"}
	fixedConfigurable    = []string{"Fixed", "Configurable"}
	unsupportedSupported = []string{"Not Supported", "Supported"}
)

// PD 2.0 Discover Identity objects (section 6.4.4.3.1).
var pd20PartnerIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 10},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (UFP)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "PDUSB Hub", "PDUSB Peripheral", "Reserved", "Reserved", "Alternate Mode Adapter", "Reserved", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd20CableIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 10},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (UFP)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "Reserved", "Reserved", "Passive Cable", "Active Cable", "Reserved", "Reserved", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd20CertStat = bitfield.Layout{
	{Name: "XID", Offset: 0, Width: 32, Decodable: true},
}

var pd20Product = bitfield.Layout{
	{Name: "bcdDevice", Offset: 0, Width: 16, Decodable: true},
	{Name: "USB Product ID", Offset: 16, Width: 16, Decodable: true},
}

var pd20PassiveCable = bitfield.Layout{
	{Name: "USB SuperSpeed Support", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.1 Gen1", "USB 3.1 Gen1 and Gen2", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 3, Width: 1},
	{Name: "Vbus Through Cable", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"Reserved", "3A", "5A", "Reserved"}},
	{Name: "SSRX2 Support", Offset: 7, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSRX1 Support", Offset: 8, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX2 Support", Offset: 9, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX1 Support", Offset: 10, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Vconn Not Required", "Vconn Required", "Reserved", "Reserved"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", ">70ns (>~7m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 17, Width: 1},
	{Name: "USB Type-C plug to", Offset: 18, Width: 2, Decodable: true, Desc: []string{"USB Type-A", "USB Type-B", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 4},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd20ActiveCable = bitfield.Layout{
	{Name: "USB SuperSpeed Support", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.1 Gen1", "USB 3.1 Gen1 and Gen2", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "SOP'' Controller Present", Offset: 3, Width: 1, Decodable: true},
	{Name: "Vbus Through Cable", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"Reserved", "3A", "5A", "Reserved"}},
	{Name: "SSRX2 Support", Offset: 7, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSRX1 Support", Offset: 8, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX2 Support", Offset: 9, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX1 Support", Offset: 10, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Vconn Not Required", "Vconn Required", "Reserved", "Reserved"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", ">70ns (>~7m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 17, Width: 1},
	{Name: "USB Type-C plug to", Offset: 18, Width: 2, Decodable: true, Desc: []string{"USB Type-A", "USB Type-B", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 4},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd20AMA = bitfield.Layout{
	{Name: "USB SuperSpeed Support", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.1 Gen1", "USB 3.1 Gen1 and Gen2", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Vbus required", Offset: 3, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vconn required", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vconn power", Offset: 5, Width: 3, Decodable: true, Desc: []string{"1W", "1.5W", "2W", "3W", "4W", "5W", "6W", "Reserved"}},
	{Name: "SSRX2 Support", Offset: 8, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSRX1 Support", Offset: 9, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX2 Support", Offset: 10, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "SSTX1 Support", Offset: 11, Width: 1, Decodable: true, Desc: fixedConfigurable},
	{Name: "Reserved", Offset: 12, Width: 12},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

// PD 2.0 power data objects (sections 6.4.1.2 and 6.4.1.3).
var pd20FixedSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Peak Current", Offset: 20, Width: 2, Decodable: true},
	{Name: "Reserved", Offset: 22, Width: 3},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "USB Suspend Supported", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd20VariableSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd20BatterySource = bitfield.Layout{
	{Name: "Maximum Allowable Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

var pd20FixedSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Reserved", Offset: 20, Width: 5},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "Higher Capability", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd20VariableSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd20BatterySink = bitfield.Layout{
	{Name: "Operational Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

// PD 3.0 Discover Identity objects.
var pd30PartnerIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 7},
	{Name: "Product Type (DFP)", Offset: 23, Width: 3, Decodable: true, Desc: []string{"Undefined", "PDUSB Hub", "PDUSB Host", "Power Brick", "Alternate Mode Controller", "Reserved", "Reserved", "Reserved"}},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (UFP)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "PDUSB Hub", "PDUSB Peripheral", "PSD", "Reserved", "Alternate Mode Adapter", "Vconn Powered USB Device", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd30CableIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 7},
	{Name: "Product Type (DFP)", Offset: 23, Width: 3},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (Cable Plug)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "Reserved", "Reserved", "Passive Cable", "Active Cable", "Reserved", "Reserved", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd30CertStat = bitfield.Layout{
	{Name: "XID", Offset: 0, Width: 32, Decodable: true},
}

var pd30Product = bitfield.Layout{
	{Name: "bcdDevice", Offset: 0, Width: 16, Decodable: true},
	{Name: "USB Product ID", Offset: 16, Width: 16, Decodable: true},
}

var pd30PassiveCable = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 3, Width: 2},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"Reserved", "3A", "5A", "Reserved"}},
	{Name: "Reserved", Offset: 7, Width: 2},
	{Name: "Maximum Vbus Voltage", Offset: 9, Width: 2, Decodable: true, Desc: []string{"20V", "30V", "40V", "50V"}},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Vconn Not Required", "Vconn Required", "Reserved", "Reserved"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", ">70ns (>~7m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 17, Width: 1},
	{Name: "Connector Type", Offset: 18, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 1},
	{Name: "VDO version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd30ActiveCableVDO1 = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "SOP'' Controller Present", Offset: 3, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Through Cable", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"USB Type-C Default Current", "3A", "5A", "Reserved"}},
	{Name: "SBU Type", Offset: 7, Width: 1, Decodable: true, Desc: []string{"SBU is passive", "SBU is active"}},
	{Name: "SBU Supported", Offset: 8, Width: 1, Decodable: true, Desc: []string{"SBU connections supported", "SBU connections are not supported"}},
	{Name: "Maximum Vbus Voltage", Offset: 9, Width: 2, Decodable: true, Desc: []string{"20V", "30V", "40V", "50V"}},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "One end active, one end passive, Vconn required", "Both ends active, Vconn required"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", "1000ns (~100m)", "2000ns (~200m)", "3000ns (~300m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 17, Width: 1},
	{Name: "Connector Type", Offset: 18, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 1},
	{Name: "VDO version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Reserved", "Reserved", "Reserved", "Version 1.3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd30ActiveCableVDO2 = bitfield.Layout{
	{Name: "USB Gen", Offset: 0, Width: 1, Decodable: true, Desc: []string{"Gen 1", "Gen 2 or higher"}},
	{Name: "Reserved", Offset: 1, Width: 1},
	{Name: "Optically Isolated Active Cable", Offset: 2, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Lanes Supported", Offset: 3, Width: 1, Decodable: true, Desc: []string{"One Lane", "Two Lanes"}},
	{Name: "USB 3.2 Supported", Offset: 4, Width: 1, Decodable: true, Desc: []string{"USB 3.2 SuperSpeed supported", "USB 3.2 SuperSpeed not supported"}},
	{Name: "USB 2.0 Supported", Offset: 5, Width: 1, Decodable: true, Desc: []string{"USB 2.0 supported", "USB 2.0 not supported"}},
	{Name: "USB 2.0 Hub Hops Consumed", Offset: 6, Width: 2, Decodable: true},
	{Name: "USB4 Supported", Offset: 8, Width: 1, Decodable: true, Desc: []string{"USB4 Supported", "USB4 Not Supported"}},
	{Name: "Active element", Offset: 9, Width: 1, Decodable: true, Desc: []string{"Active Redriver", "Active Retimer"}},
	{Name: "Physical connection", Offset: 10, Width: 1, Decodable: true, Desc: []string{"Copper", "Optical"}},
	{Name: "U3 to U0 transition mode", Offset: 11, Width: 1, Decodable: true, Desc: []string{"U3 to U0 direct", "U3 to U0 through U35"}},
	{Name: "U3/Cld Power", Offset: 12, Width: 3, Decodable: true, Desc: []string{">10mW", "5-10mW", "1-5mW", "0.5-1mW", "0.2-0.5mW", "50-200uW", "<50uW", "Reserved"}},
	{Name: "Reserved", Offset: 15, Width: 1},
	{Name: "Shutdown Temperature", Offset: 16, Width: 8, Decodable: true},
	{Name: "Maximum Operating Temperature", Offset: 24, Width: 8, Decodable: true},
}

var pd30AMA = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 only", "USB 3.2 Gen1 and USB 2.0", "USB 3.2 Gen1, Gen2 and USB 2.0", "billboard only", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Vbus required", Offset: 3, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vconn required", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vconn power", Offset: 5, Width: 3, Decodable: true, Desc: []string{"1W", "1.5W", "2W", "3W", "4W", "5W", "6W", "Reserved"}},
	{Name: "Reserved", Offset: 8, Width: 13},
	{Name: "VDO Version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd30VPD = bitfield.Layout{
	{Name: "Charge Through Support", Offset: 0, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Ground Impedance", Offset: 1, Width: 6, Decodable: true},
	{Name: "Vbus Impedance", Offset: 7, Width: 6, Decodable: true},
	{Name: "Reserved", Offset: 13, Width: 1},
	{Name: "Charge Through Current Support", Offset: 14, Width: 1, Decodable: true, Desc: []string{"3A capable", "5A capable"}},
	{Name: "Maximum Vbus Voltage", Offset: 15, Width: 2, Decodable: true, Desc: []string{"20V", "30V", "40V", "50V"}},
	{Name: "Reserved", Offset: 17, Width: 4},
	{Name: "VDO Version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

// UFP VDO1 and VDO2 exist only in 3.0; 3.1 merged them into one UFP VDO.
var pd30UFPVDO1 = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Alternate Modes", Offset: 3, Width: 3, Decodable: true},
	{Name: "Reserved", Offset: 6, Width: 18},
	{Name: "Device Capability", Offset: 24, Width: 4, Decodable: true},
	{Name: "Reserved", Offset: 28, Width: 1},
	{Name: "UFP VDO Version", Offset: 29, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
}

var pd30UFPVDO2 = bitfield.Layout{
	{Name: "USB3 Max Power", Offset: 0, Width: 7, Decodable: true},
	{Name: "USB3 Min Power", Offset: 7, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 14, Width: 2},
	{Name: "USB4 Max Power", Offset: 16, Width: 7, Decodable: true},
	{Name: "USB4 Min Power", Offset: 23, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 30, Width: 2},
}

var pd30DFP = bitfield.Layout{
	{Name: "Port Number", Offset: 0, Width: 5, Decodable: true},
	{Name: "Reserved", Offset: 5, Width: 19},
	{Name: "Host Capability", Offset: 24, Width: 3, Decodable: true},
	{Name: "Reserved", Offset: 27, Width: 2},
	{Name: "DFP VDO Version", Offset: 29, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
}

// PD 3.0 power data objects. The PPS APDO is new in 3.0.
var pd30FixedSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Peak Current", Offset: 20, Width: 2, Decodable: true},
	{Name: "Reserved", Offset: 22, Width: 2},
	{Name: "Unchunked Extended Messages Supported", Offset: 24, Width: 1, Decodable: true},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "USB Suspend Supported", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd30VariableSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd30BatterySource = bitfield.Layout{
	{Name: "Maximum Allowable Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

var pd30PPSSource = bitfield.Layout{
	{Name: "Maximum Current in 50mA increments", Offset: 0, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 7, Width: 1},
	{Name: "Minimum Voltage in 100mV increments", Offset: 8, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 1},
	{Name: "Maximum Voltage in 100mV increments", Offset: 17, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 25, Width: 2},
	{Name: "PPS Power Limited", Offset: 27, Width: 1, Decodable: true},
	{Name: "Programmable Power Supply", Offset: 28, Width: 2, Decodable: true},
	{Name: "Augmented Power Data Object", Offset: 30, Width: 2, Decodable: true},
}

var pd30FixedSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Reserved", Offset: 20, Width: 3},
	{Name: "Fast Role Swap Required", Offset: 23, Width: 2, Decodable: true, Desc: []string{"Fast Swap not supported", "Default USB Power", "1.5A @ 5V", "3.0A @ 5V"}},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "Higher Capability", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd30VariableSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd30BatterySink = bitfield.Layout{
	{Name: "Operational Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

var pd30PPSSink = bitfield.Layout{
	{Name: "Maximum Current in 50mA increments", Offset: 0, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 7, Width: 1},
	{Name: "Minimum Voltage in 100mV increments", Offset: 8, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 1},
	{Name: "Maximum Voltage in 100mV increments", Offset: 17, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 25, Width: 3},
	{Name: "Programmable Power Supply", Offset: 28, Width: 2, Decodable: true},
	{Name: "Augmented Power Data Object", Offset: 30, Width: 2, Decodable: true},
}

// PD 3.1 Discover Identity objects. The AMA product type is gone.
var pd31PartnerIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 5},
	{Name: "Connector Type", Offset: 21, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C Receptacle", "USB Type-C Plug"}},
	{Name: "Product Type (DFP)", Offset: 23, Width: 3, Decodable: true, Desc: []string{"Undefined", "PDUSB Hub", "PDUSB Host", "Power Brick", "Alternate Mode Controller", "Reserved", "Reserved", "Reserved"}},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (UFP)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "PDUSB Hub", "PDUSB Peripheral", "PSD", "Reserved", "Alternate Mode Adapter", "Vconn Powered USB Device", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd31CableIDHeader = bitfield.Layout{
	{Name: "USB Vendor ID", Offset: 0, Width: 16, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 5},
	{Name: "Connector Type", Offset: 21, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C Receptacle", "USB Type-C Plug"}},
	{Name: "Product Type (DFP)", Offset: 23, Width: 3},
	{Name: "Modal Operation Supported", Offset: 26, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Product Type (Cable Plug)", Offset: 27, Width: 3, Decodable: true, Desc: []string{"Undefined", "Reserved", "Reserved", "Passive Cable", "Active Cable", "Reserved", "Reserved", "Reserved"}},
	{Name: "USB Capable as a Device", Offset: 30, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Capable as a Host", Offset: 31, Width: 1, Decodable: true, Desc: noYes},
}

var pd31CertStat = bitfield.Layout{
	{Name: "XID", Offset: 0, Width: 32, Decodable: true},
}

var pd31Product = bitfield.Layout{
	{Name: "bcdDevice", Offset: 0, Width: 16, Decodable: true},
	{Name: "USB Product ID", Offset: 16, Width: 16, Decodable: true},
}

var pd31PassiveCable = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Reserved", Offset: 3, Width: 2},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"Reserved", "3A", "5A", "Reserved"}},
	{Name: "Reserved", Offset: 7, Width: 2},
	{Name: "Maximum Vbus Voltage", Offset: 9, Width: 2, Decodable: true, Desc: []string{"20V", "30V (Deprecated)", "40V (Deprecated)", "50V"}},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Vconn Not Required", "Vconn Required", "Reserved", "Reserved"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", ">70ns (>~7m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "EPR Mode Capable", Offset: 17, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Type-C Connector to", Offset: 18, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 1},
	{Name: "VDO version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd31ActiveCableVDO1 = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 Only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "SOP'' Controller Present", Offset: 3, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Through Cable", Offset: 4, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vbus Current Handling", Offset: 5, Width: 2, Decodable: true, Desc: []string{"USB Type-C Default Current", "3A", "5A", "Reserved"}},
	{Name: "SBU Type", Offset: 7, Width: 1, Decodable: true, Desc: []string{"SBU is passive", "SBU is active"}},
	{Name: "SBU Supported", Offset: 8, Width: 1, Decodable: true, Desc: []string{"SBU connections supported", "SBU connections are not supported"}},
	{Name: "Maximum Vbus Voltage", Offset: 9, Width: 2, Decodable: true, Desc: []string{"20V", "30V", "40V", "50V"}},
	{Name: "Cable Termination Type", Offset: 11, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "One end active, one end passive, Vconn required", "Both ends active, Vconn required"}},
	{Name: "Cable Latency", Offset: 13, Width: 4, Decodable: true, Desc: []string{"Reserved", "<10ns (~1m)", "10ns to 20ns (~2m)", "20ns to 30ns (~3m)", "30ns to 40ns (~4m)", "40ns to 50ns (~5m)", "50ns to 60ns (~6m)", "60ns to 70ns (~7m)", "1000ns (~100m)", "2000ns (~200m)", "3000ns (~300m)", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "EPR Mode Capable", Offset: 17, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Type-C to", Offset: 18, Width: 2, Decodable: true, Desc: []string{"Reserved", "Reserved", "USB Type-C", "Captive"}},
	{Name: "Reserved", Offset: 20, Width: 1},
	{Name: "VDO version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Reserved", "Reserved", "Reserved", "Version 1.3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd31ActiveCableVDO2 = bitfield.Layout{
	{Name: "USB Gen", Offset: 0, Width: 1, Decodable: true, Desc: []string{"Gen 1", "Gen 2 or higher"}},
	{Name: "Reserved", Offset: 1, Width: 1},
	{Name: "Optically Isolated Active Cable", Offset: 2, Width: 1, Decodable: true, Desc: noYes},
	{Name: "USB Lanes Supported", Offset: 3, Width: 1, Decodable: true, Desc: []string{"One Lane", "Two Lanes"}},
	{Name: "USB 3.2 Supported", Offset: 4, Width: 1, Decodable: true, Desc: []string{"USB 3.2 SuperSpeed supported", "USB 3.2 SuperSpeed not supported"}},
	{Name: "USB 2.0 Supported", Offset: 5, Width: 1, Decodable: true, Desc: []string{"USB 2.0 supported", "USB 2.0 not supported"}},
	{Name: "USB 2.0 Hub Hops Consumed", Offset: 6, Width: 2, Decodable: true},
	{Name: "USB4 Supported", Offset: 8, Width: 1, Decodable: true, Desc: []string{"USB4 Supported", "USB4 Not Supported"}},
	{Name: "Active element", Offset: 9, Width: 1, Decodable: true, Desc: []string{"Active Redriver", "Active Retimer"}},
	{Name: "Physical connection", Offset: 10, Width: 1, Decodable: true, Desc: []string{"Copper", "Optical"}},
	{Name: "U3 to U0 transition mode", Offset: 11, Width: 1, Decodable: true, Desc: []string{"U3 to U0 direct", "U3 to U0 through U35"}},
	{Name: "U3/Cld Power", Offset: 12, Width: 3, Decodable: true, Desc: []string{">10mW", "5-10mW", "1-5mW", "0.5-1mW", "0.2-0.5mW", "50-200uW", "<50uW", "Reserved"}},
	{Name: "Reserved", Offset: 15, Width: 1},
	{Name: "Shutdown Temperature", Offset: 16, Width: 8, Decodable: true},
	{Name: "Maximum Operating Temperature", Offset: 24, Width: 8, Decodable: true},
}

var pd31VPD = bitfield.Layout{
	{Name: "Charge Through Support", Offset: 0, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Ground Impedance", Offset: 1, Width: 6, Decodable: true},
	{Name: "Vbus Impedance", Offset: 7, Width: 6, Decodable: true},
	{Name: "Reserved", Offset: 13, Width: 1},
	{Name: "Charge Through Current Support", Offset: 14, Width: 1, Decodable: true, Desc: []string{"3A capable", "5A capable"}},
	{Name: "Maximum Vbus Voltage", Offset: 15, Width: 2, Decodable: true, Desc: []string{"20V", "30V (Deprecated)", "40V (Deprecated)", "50V (Deprecated)"}},
	{Name: "Reserved", Offset: 17, Width: 4},
	{Name: "VDO Version", Offset: 21, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Firmware Version", Offset: 24, Width: 4, Decodable: true},
	{Name: "HW Version", Offset: 28, Width: 4, Decodable: true},
}

var pd31UFP = bitfield.Layout{
	{Name: "USB Highest Speed", Offset: 0, Width: 3, Decodable: true, Desc: []string{"USB 2.0 only", "USB 3.2 Gen1", "USB 3.2/USB4 Gen2", "USB4 Gen3", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "Alternate Modes", Offset: 3, Width: 3, Decodable: true},
	{Name: "Vbus Required", Offset: 6, Width: 1, Decodable: true, Desc: []string{"Yes", "No"}},
	{Name: "Vconn Required", Offset: 7, Width: 1, Decodable: true, Desc: noYes},
	{Name: "Vconn Power", Offset: 8, Width: 3, Decodable: true, Desc: []string{"1W", "1.5W", "2W", "3W", "4W", "5W", "6W", "Reserved"}},
	{Name: "Reserved", Offset: 11, Width: 11},
	{Name: "Connector Type", Offset: 22, Width: 2, Decodable: true},
	{Name: "Device Capability", Offset: 24, Width: 4, Decodable: true},
	{Name: "Reserved", Offset: 28, Width: 1},
	{Name: "UFP VDO Version", Offset: 29, Width: 3, Decodable: true, Desc: []string{"Reserved", "Reserved", "Reserved", "Version 1.3", "Reserved", "Reserved", "Reserved", "Reserved"}},
}

var pd31DFP = bitfield.Layout{
	{Name: "Port Number", Offset: 0, Width: 5, Decodable: true},
	{Name: "Reserved", Offset: 5, Width: 17},
	{Name: "Connector Type", Offset: 22, Width: 2, Decodable: true},
	{Name: "Host Capability", Offset: 24, Width: 3, Decodable: true},
	{Name: "Reserved", Offset: 27, Width: 2},
	{Name: "DFP VDO Version", Offset: 29, Width: 3, Decodable: true, Desc: []string{"Version 1.0", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved", "Reserved"}},
}

// PD 3.1 power data objects.
var pd31FixedSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Peak Current", Offset: 20, Width: 2, Decodable: true},
	{Name: "Reserved", Offset: 22, Width: 1},
	{Name: "EPR Mode Capable", Offset: 23, Width: 1, Decodable: true},
	{Name: "Unchunked Extended Messages Supported", Offset: 24, Width: 1, Decodable: true},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "USB Suspend Supported", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd31VariableSource = bitfield.Layout{
	{Name: "Maximum Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd31BatterySource = bitfield.Layout{
	{Name: "Maximum Allowable Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

var pd31PPSSource = bitfield.Layout{
	{Name: "Maximum Current in 50mA increments", Offset: 0, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 7, Width: 1},
	{Name: "Minimum Voltage in 100mV increments", Offset: 8, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 1},
	{Name: "Maximum Voltage in 100mV increments", Offset: 17, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 25, Width: 2},
	{Name: "PPS Power Limited", Offset: 27, Width: 1, Decodable: true},
	{Name: "SPR PPS", Offset: 28, Width: 2, Decodable: true},
	{Name: "Augmented Power Data Object", Offset: 30, Width: 2, Decodable: true},
}

var pd31FixedSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Reserved", Offset: 20, Width: 3},
	{Name: "Fast Role Swap Required", Offset: 23, Width: 2, Decodable: true, Desc: []string{"Fast Swap not supported", "Default USB Power", "1.5A @ 5V", "3.0A @ 5V"}},
	{Name: "Dual-Role Data", Offset: 25, Width: 1, Decodable: true},
	{Name: "USB Communications Capable", Offset: 26, Width: 1, Decodable: true},
	{Name: "Unconstrained Power", Offset: 27, Width: 1, Decodable: true},
	{Name: "Higher Capability", Offset: 28, Width: 1, Decodable: true},
	{Name: "Dual-Role Power", Offset: 29, Width: 1, Decodable: true},
	{Name: "Fixed supply", Offset: 30, Width: 2, Decodable: true},
}

var pd31VariableSink = bitfield.Layout{
	{Name: "Operational Current in 10mA units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Variable Supply", Offset: 30, Width: 2, Decodable: true},
}

var pd31BatterySink = bitfield.Layout{
	{Name: "Operational Power in 250mW units", Offset: 0, Width: 10, Decodable: true},
	{Name: "Minimum Voltage in 50mV units", Offset: 10, Width: 10, Decodable: true},
	{Name: "Maximum Voltage in 50mV units", Offset: 20, Width: 10, Decodable: true},
	{Name: "Battery", Offset: 30, Width: 2, Decodable: true},
}

var pd31PPSSink = bitfield.Layout{
	{Name: "Maximum Current in 50mA increments", Offset: 0, Width: 7, Decodable: true},
	{Name: "Reserved", Offset: 7, Width: 1},
	{Name: "Minimum Voltage in 100mV increments", Offset: 8, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 16, Width: 1},
	{Name: "Maximum Voltage in 100mV increments", Offset: 17, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 25, Width: 3},
	{Name: "SPR PPS", Offset: 28, Width: 2, Decodable: true},
	{Name: "Augmented Power Data Object", Offset: 30, Width: 2, Decodable: true},
}

// DisplayPort (SVID 0xff01) mode VDOs.
var dpAltModePartner = bitfield.Layout{
	{Name: "Port Capability", Offset: 0, Width: 2, Decodable: true, Desc: []string{"Reserved", "DP Sink Device Capable", "DP Source Device Capable", "Both Sink and Source Device Capable"}},
	{Name: "Signaling for Transport of DisplayPort Protocol", Offset: 2, Width: 4, Decodable: true},
	{Name: "Receptacle Indication", Offset: 6, Width: 1, Decodable: true, Desc: []string{"DP interface presents as a plug", "DP interface presents as a receptacle"}},
	{Name: "USB 2.0 Signaling Not Used", Offset: 7, Width: 1, Decodable: true, Desc: []string{"USB 2.0 may be needed", "USB 2.0 not needed"}},
	{Name: "DP Source Device Pin Supported", Offset: 8, Width: 8, Decodable: true},
	{Name: "DP Sink Device Pin Supported", Offset: 16, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 24, Width: 8},
}

var dpAltModeActiveCable = bitfield.Layout{
	{Name: "Reserved", Offset: 0, Width: 2},
	{Name: "Signaling for Transport of DisplayPort Protocol", Offset: 2, Width: 4, Decodable: true},
	{Name: "Reserved", Offset: 6, Width: 2},
	{Name: "DP Source Device Pin Assignments Supported", Offset: 8, Width: 8, Decodable: true},
	{Name: "DP Sink Device Pin Assignments Supported", Offset: 16, Width: 8, Decodable: true},
	{Name: "Reserved", Offset: 24, Width: 8},
}

// Thunderbolt 3 (SVID 0x8087) discover mode VDOs.
var tbt3SOP = bitfield.Layout{
	{Name: "TBT Alternate Mode", Offset: 0, Width: 16, Decodable: true},
	{Name: "TBT Adapter", Offset: 16, Width: 1, Decodable: true, Desc: []string{"TBT3 Adapter", "TBT2 Legacy Adapter"}},
	{Name: "Reserved", Offset: 17, Width: 9, Decodable: true},
	{Name: "Intel Specific B0", Offset: 26, Width: 1, Decodable: true, Desc: unsupportedSupported},
	{Name: "Reserved", Offset: 27, Width: 3, Decodable: true},
	{Name: "Vendor Specific B0", Offset: 30, Width: 1, Decodable: true, Desc: unsupportedSupported},
	{Name: "Vendor Specific B1", Offset: 31, Width: 1, Decodable: true, Desc: unsupportedSupported},
}

var tbt3SOPPrime = bitfield.Layout{
	{Name: "TBT Alternate Mode", Offset: 0, Width: 16, Decodable: true},
	{Name: "Cable Speed", Offset: 16, Width: 3, Decodable: true, Desc: []string{"Reserved", "USB 3.1 Gen1 (10 Gbps TBT Support)", "10 Gbps (USB 3.2 Gen1 and Gen2 passive cables)", "10 Gbps and 20 Gbps (TBT 3rd Gen active cables and 20 Gbps passive cables)", "Reserved", "Reserved", "Reserved", "Reserved"}},
	{Name: "TBT Rounded Support", Offset: 19, Width: 2, Decodable: true, Desc: []string{"3rd Gen Non-Rounded TBT", "3rd & 4th Gen Rounded and Non-Rounded TBT", "Reserved", "Reserved"}},
	{Name: "Cable Type", Offset: 21, Width: 1, Decodable: true, Desc: []string{"Non-Optical", "Optical"}},
	{Name: "Re-timer", Offset: 22, Width: 1, Decodable: true, Desc: []string{"Not re-timer", "Re-timer"}},
	{Name: "Active Cable Plug Link Training", Offset: 23, Width: 1, Decodable: true, Desc: []string{"Active with bi-directional LSRX", "Active with uni-directional LSRX"}},
	{Name: "Reserved", Offset: 24, Width: 1},
	{Name: "Active/Passive", Offset: 25, Width: 1, Decodable: true, Desc: []string{"Passive Cable", "Active Cable"}},
	{Name: "Reserved", Offset: 26, Width: 6},
}
