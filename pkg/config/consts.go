package config

// ImageName is the builder image repository. The sandboxed entrypoint clones
// the submitted repository and emits *.opt.wasm (and optionally *.idl) into
// the bind-mounted workspace.
const ImageName = "ghcr.io/gear-tech/sails-program-verifier"

// MountPath is the guest side of the build workspace bind mount.
const MountPath = "/mnt/target"

// AvailableVersions is the allow-list of supported builder image tags.
var AvailableVersions = []string{"0.7.1", "0.7.3", "0.8.0"}

func IsVersionSupported(version string) bool {
	for _, v := range AvailableVersions {
		if v == version {
			return true
		}
	}
	return false
}
