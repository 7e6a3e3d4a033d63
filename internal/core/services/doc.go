// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services:
//   - DeviceMapperService: routes one input to the family engine that claims it
//   - BatchService: maps a whole feed concurrently with optional throttling
//   - SettingsService: reads and persists mapping and batch settings
package services
