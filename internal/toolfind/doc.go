// Package toolfind locates build tools on the host.
//
// Two layers are provided. The low-level functions ([FindInPath], [ExePath],
// [PathExt], [IsExecutable]) implement PATH searching with Windows PATHEXT
// semantics, including the Cygwin/MSYS2 quirk of a ";" separated PATHEXT on
// otherwise POSIX shells. The [Locator] adds per-tool knowledge: dedicated
// environment variables (GIT, PERFORCE, DOXYGEN, ...), well-known install
// roots per host family and a result cache.
//
// Lookup priority, highest first:
//
//  1. explicit override from the configuration's tools table
//  2. cached result of a previous lookup
//  3. the tool's dedicated environment variable
//  4. configured extra search roots, then PATH
//  5. well-known default install locations
//
// Not finding a tool is an expected outcome and is reported as an empty
// string, never as an error.
package toolfind
