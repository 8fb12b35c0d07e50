// Package paths centralizes filesystem path resolution for nova.
//
// It resolves XDG base directories via the adrg/xdg package, locates the
// three configuration scope files (global, project, user), and computes the
// data directory layout for installed marketplaces.
//
// The project root is discovered by walking up from a starting directory
// until a .nova marker directory is found, mirroring how version control
// tools locate their repository root.
package paths
