// Package config loads the optional stackctl configuration file.
//
// stackctl is zero-config by default: with no file present it deploys
// the Pixel Money stack exactly as the original deployment workflow
// did (docker-compose.yml in the current directory, a 15 second
// settling wait, pytest over tests/, and the stack's well-known
// endpoint list). A config file overrides any subset of that.
//
// Two file formats are accepted:
//   - stackctl.yaml — loaded through gookit/config with mapstructure
//     binding and duration decode hooks
//   - stackctl.jsonc / stackctl.json — JSON with comments, stripped by
//     tidwall/jsonc before decoding
package config
