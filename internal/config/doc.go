// Package config manages nova's layered YAML configuration.
//
// Configuration is declared at three scopes with ascending precedence:
//
//   - global:  ~/.config/nova/config.yaml
//   - project: <projectRoot>/.nova/config.yaml
//   - user:    <projectRoot>/.nova/config.local.yaml
//
// The project root is the nearest ancestor of the working directory that
// contains a .nova directory.
//
// # Resolution
//
// [Store.Resolve] deep-merges the three scope documents in precedence
// order. Scalar fields from later scopes override earlier ones; the
// marketplaces list appends across scopes, keyed by entry name, with a
// later scope's entry replacing an earlier one of the same name.
// Environment variables of the form NOVA_CONFIG__SECTION__FIELD apply on
// top of the merged result as the highest-precedence layer; malformed keys
// are skipped without aborting resolution.
//
// # Writes
//
// [Store.Write] mutates exactly one scope file: it loads the target file,
// applies the mutation, validates, and writes atomically. Other scope
// files are never touched, so an add to the project scope leaves the
// global file byte-for-byte unchanged.
package config
