package version

// AppVersion is the released version of autopilotctl.
const AppVersion = "0.2.0"
