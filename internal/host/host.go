package host

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// Variant identifies the host OS/shell personality the process runs under.
type Variant int

const (
	// VariantUnknown indicates the host could not be classified.
	VariantUnknown Variant = iota

	// VariantWindows is native Windows (cmd.exe / PowerShell).
	VariantWindows

	// VariantWSL is Windows Subsystem for Linux.
	VariantWSL

	// VariantCygwin is a Cygwin shell on Windows.
	VariantCygwin

	// VariantMSYS2 is an MSYS2 (or Git Bash) shell on Windows.
	VariantMSYS2

	// VariantMacOS is macOS.
	VariantMacOS

	// VariantLinux is Linux without a Windows host.
	VariantLinux
)

// String returns the lowercase name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantWindows:
		return "windows"
	case VariantWSL:
		return "wsl"
	case VariantCygwin:
		return "cygwin"
	case VariantMSYS2:
		return "msys2"
	case VariantMacOS:
		return "macos"
	case VariantLinux:
		return "linux"
	default:
		return "unknown"
	}
}

// Info describes the detected host. All fields are derived from the Variant
// at construction and never change, so an Info can be shared freely.
//
// Components that care about the host receive an *Info explicitly instead of
// consulting process-wide globals, which keeps them testable on any machine.
type Info struct {
	// Variant is the classified host personality.
	Variant Variant

	// IsWindows is true only on native Windows.
	IsWindows bool

	// IsLinux is true on Linux kernels, including WSL.
	IsLinux bool

	// IsMacOS is true on macOS.
	IsMacOS bool

	// IsCygwin is true under a Cygwin shell.
	IsCygwin bool

	// IsMSYS is true under an MSYS2 shell.
	IsMSYS bool

	// IsWSL is true under Windows Subsystem for Linux.
	// IsWSL implies IsLinux.
	IsWSL bool

	// IsWindowsHost is true when a Windows filesystem is reachable:
	// native Windows, Cygwin, MSYS2 or WSL. Never true on macOS or
	// plain Linux.
	IsWindowsHost bool

	// PosixDrivePrefix is the mount prefix this variant uses to expose
	// Windows drive letters as POSIX paths: "/cygdrive/" on Cygwin,
	// "/" on MSYS2, "/mnt/" on WSL, and "" everywhere else.
	PosixDrivePrefix string
}

// NewInfo builds an Info for the given variant. The boolean flags and drive
// prefix are fully determined by the variant, which keeps the documented
// invariants impossible to violate.
func NewInfo(v Variant) *Info {
	info := &Info{Variant: v}

	switch v {
	case VariantWindows:
		info.IsWindows = true
	case VariantWSL:
		info.IsWSL = true
		info.IsLinux = true
		info.PosixDrivePrefix = "/mnt/"
	case VariantCygwin:
		info.IsCygwin = true
		info.PosixDrivePrefix = "/cygdrive/"
	case VariantMSYS2:
		info.IsMSYS = true
		info.PosixDrivePrefix = "/"
	case VariantMacOS:
		info.IsMacOS = true
	case VariantLinux:
		info.IsLinux = true
	}

	info.IsWindowsHost = info.IsWindows || info.IsCygwin || info.IsMSYS || info.IsWSL

	return info
}

var detectOnce struct {
	sync.Once
	info *Info
}

// Detect classifies the running host. The result is computed once and cached
// for the life of the process; it is purely derived from OS identity and
// never changes.
func Detect() *Info {
	detectOnce.Do(func() {
		detectOnce.info = NewInfo(detectVariant())
	})
	return detectOnce.info
}

// detectVariant inspects the interpreter and environment to classify the host.
func detectVariant() Variant {
	switch runtime.GOOS {
	case "windows":
		// A Windows binary may still be running inside an MSYS2 or
		// Cygwin shell. MSYSTEM is exported by MSYS2 and Git Bash.
		if os.Getenv("MSYSTEM") != "" {
			return VariantMSYS2
		}
		if strings.Contains(strings.ToLower(os.Getenv("OSTYPE")), "cygwin") {
			return VariantCygwin
		}
		return VariantWindows
	case "darwin":
		return VariantMacOS
	case "linux":
		if isWSL() {
			return VariantWSL
		}
		return VariantLinux
	default:
		return VariantUnknown
	}
}

// isWSL reports whether a Linux process is running under the Windows
// Subsystem for Linux.
func isWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	if _, err := os.Lstat("/proc/sys/fs/binfmt_misc/WSLInterop"); err == nil {
		return true
	}
	// Both WSL1 and WSL2 ship kernels that identify themselves here.
	data, _ := os.ReadFile("/proc/version")
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft")
}

// Machine returns the high-level operating system family: "windows",
// "macosx", "linux" or "unknown". Cygwin, MSYS2 and WSL report "linux"
// because they present a POSIX personality to the process.
func (i *Info) Machine() string {
	switch {
	case i.IsWindows:
		return "windows"
	case i.IsMacOS:
		return "macosx"
	case i.IsLinux || i.IsCygwin || i.IsMSYS:
		return "linux"
	default:
		return "unknown"
	}
}

// WindowsCPU returns the Windows host CPU type: "x64", "x86", "arm" or
// "arm64". It returns "" when the host has no Windows capability, or when
// the process runs under a POSIX-on-Windows shell and wslAllowed is false.
// An empty result is absence, not an error.
func (i *Info) WindowsCPU(wslAllowed bool) string {
	if !i.IsWindowsHost {
		return ""
	}
	if !i.IsWindows && !wslAllowed {
		return ""
	}
	return cpuName(runtime.GOARCH)
}

// MacCPU returns the macOS CPU type ("x64" or "arm64"), or "" on other hosts.
func (i *Info) MacCPU() string {
	if !i.IsMacOS {
		return ""
	}
	return cpuName(runtime.GOARCH)
}

// cpuName maps a GOARCH value to the toolchain CPU naming convention.
func cpuName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	case "arm":
		return "arm"
	case "arm64":
		return "arm64"
	default:
		return goarch
	}
}
