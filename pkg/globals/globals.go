package globals

// FirmwareVersion is set at build time via -ldflags
var FirmwareVersion = "dev"

// Writable data directory
var DataDir = "/var/pktfwd"

// Supervisor state
var SupervisorDataDir = DataDir + "/.pktfwd-data"

// Gateway identity, generated on first boot
var IdentityPath = SupervisorDataDir + "/identity.json"

// Logs
var LogsPath = SupervisorDataDir + "/logs.json"

// Diagnostics flag read by the gateway dashboard
var DiagnosticsPath = DataDir + "/diagnostics"

// Concentrator tooling root
var RootDir = "/opt/pktfwd"

// SX1301 (legacy concentrator) file layout
var SX1301RegionConfigsDir = RootDir + "/sx1301/region_configs"
var SX1301ResetScriptPath = RootDir + "/sx1301/reset_lgw.sh"
var SX1301ForwarderDir = RootDir + "/sx1301"

// SX1302 concentrator file layout
var SX1302RegionConfigsDir = RootDir + "/sx1302/packet_forwarder"
var SX1302ResetScriptPath = RootDir + "/sx1302/tools/reset_lgw.sh"
var SX1302ForwarderPath = RootDir + "/sx1302/packet_forwarder/lora_pkt_fwd"

// Chip identification utility, distinguishes SX1302 from SX1301 boards
var ChipIDPath = RootDir + "/sx1302/util_chip_id/chip_id"
