package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jamespanton93/terratools/core"
)

// Settings holds mesh generation and server configuration.
type Settings struct {
	Mesh   MeshSettings
	Server ServerSettings
}

// MeshSettings selects the shell discretization.
type MeshSettings struct {
	Level       int     `mapstructure:"level"`        // icosahedron refinement level k
	InnerRadius float64 `mapstructure:"inner_radius"` // km, core-mantle boundary
	OuterRadius float64 `mapstructure:"outer_radius"` // km, surface
}

// ServerSettings configures the optional mesh streaming server.
type ServerSettings struct {
	Port int `mapstructure:"port"`
}

// Load reads configuration from an optional file and the environment.
// Env var overrides use prefix TERRATOOLS_ (e.g. TERRATOOLS_MESH_LEVEL).
// An empty path means no config file; defaults still apply.
func Load(path string) (Settings, error) {
	v := viper.New()

	// Earth mantle defaults, radii in km.
	v.SetDefault("mesh.level", 4)
	v.SetDefault("mesh.inner_radius", 3480.0)
	v.SetDefault("mesh.outer_radius", 6370.0)
	v.SetDefault("server.port", 8080)

	v.SetEnvPrefix("TERRATOOLS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

// Validate checks the configured resolution against the mesh core's
// constraints without doing any construction work.
func (s Settings) Validate() error {
	return core.ValidateResolution(s.Mesh.Level, s.Mesh.InnerRadius, s.Mesh.OuterRadius)
}

// VertexCountPerLayer reports the per-layer vertex count the configured
// level will produce, for log output before the build starts.
func (s Settings) VertexCountPerLayer() int {
	return core.VertexCount(s.Mesh.Level)
}
