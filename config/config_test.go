package config

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polypheny/polytype/polytype"
)

func TestReadConfig(t *testing.T) {
	type args struct {
		path string
	}
	tests := []struct {
		name    string
		args    args
		want    *Config
		wantErr bool
	}{
		{
			name: "simple parse",
			args: args{
				path: "fixtures/polytype.yml",
			},
			want: &Config{
				TypeSystem: map[string]interface{}{
					"numeric": map[string]interface{}{
						"maxPrecision": 38,
						"maxScale":     10,
					},
					"precision": map[string]interface{}{
						"default": map[string]interface{}{
							"varchar": 255,
						},
						"max": map[string]interface{}{
							"VARCHAR":   1000,
							"TIMESTAMP": 9,
						},
					},
					"charset":               "UTF-8",
					"raggedUnionsToVarying": true,
				},
				Cache: map[string]interface{}{
					"results": 1024,
				},
				Logging: map[string]interface{}{
					"path": "/tmp/polytype-logs.txt",
				},
				Repl: map[string]interface{}{
					"history": []interface{}{
						"lrt INTEGER BIGINT",
						`describe "VARCHAR(5) ARRAY"`,
					},
				},
			},
			wantErr: false,
		},
		{
			name: "missing file",
			args: args{
				path: "fixtures/missing.yml",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadConfig(tt.args.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeSystem(t *testing.T) {
	cfg, err := ReadConfig("fixtures/polytype.yml")
	require.NoError(t, err)

	ts, err := TypeSystem(cfg)
	require.NoError(t, err)
	assert.Equal(t, 38, ts.MaxNumericPrecision())
	assert.Equal(t, 10, ts.MaxNumericScale())
	assert.Equal(t, 255, ts.DefaultPrecision(polytype.KindVarchar))
	assert.Equal(t, 1000, ts.MaxPrecision(polytype.KindVarchar))
	assert.Equal(t, 9, ts.MaxPrecision(polytype.KindTimestamp))
	assert.Equal(t, "UTF-8", ts.DefaultCharset().Name())
	assert.True(t, ts.ShouldConvertRaggedUnionTypesToVarying())

	f := polytype.NewFactory(ts)
	assert.Equal(t, `VARCHAR(1000) CHARACTER SET "UTF-8" NOT NULL`, f.CreateTypeWithPrecision(polytype.KindVarchar, 5000).Digest())

	size, err := ResultCacheSize(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), size)

	path, err := LogPath(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/polytype-logs.txt", path)

	enabled, err := LoggingEnabled(cfg)
	require.NoError(t, err)
	assert.True(t, enabled)

	history, err := ReplHistory(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"lrt INTEGER BIGINT", `describe "VARCHAR(5) ARRAY"`}, history)
}

func TestTypeSystemDefaults(t *testing.T) {
	cfg := &Config{}
	ts, err := TypeSystem(cfg)
	require.NoError(t, err)
	assert.Equal(t, polytype.DefaultMaxNumericPrecision, ts.MaxNumericPrecision())
	assert.Nil(t, ts.DefaultPrecisions)
	assert.False(t, ts.ShouldConvertRaggedUnionTypesToVarying())

	size, err := ResultCacheSize(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	history, err := ReplHistory(cfg)
	require.NoError(t, err)
	assert.Empty(t, history)

	enabled, err := LoggingEnabled(&Config{Logging: map[string]interface{}{"enabled": false}})
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestTypeSystemErrors(t *testing.T) {
	for _, path := range []string{"fixtures/invalid.yml", "fixtures/unknown_kind.yml"} {
		t.Run(path, func(t *testing.T) {
			cfg, err := ReadConfig(path)
			require.NoError(t, err)
			_, err = TypeSystem(cfg)
			assert.Error(t, err)
		})
	}

	_, err := TypeSystem(&Config{TypeSystem: map[string]interface{}{"charset": "no-such-charset"}})
	assert.Error(t, err)
}

func TestGetters(t *testing.T) {
	section := map[string]interface{}{
		"a": map[string]interface{}{
			"b": 3,
			"c": "text",
			"d": []interface{}{"x", "y"},
			"e": true,
		},
		"f": []interface{}{1},
	}

	i, err := GetInt(section, "a.b")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	s, err := GetString(section, "a.c")
	require.NoError(t, err)
	assert.Equal(t, "text", s)

	list, err := GetStringList(section, "a.d")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, list)

	b, err := GetBool(section, "a.e")
	require.NoError(t, err)
	assert.True(t, b)

	m, err := GetMap(section, "a")
	require.NoError(t, err)
	assert.Len(t, m, 4)

	i, err = GetInt(section, "a.missing", WithDefault(7))
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	_, err = GetInt(section, "a.missing")
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	_, err = GetInt(section, "a.c")
	assert.Error(t, err)

	_, err = GetString(section, "f.g")
	assert.Error(t, err)

	_, err = GetStringList(section, "f")
	assert.Error(t, err)

	list, err = GetStringList(section, "x.y", WithDefault([]string{"z"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, list)

	list, err = GetStringList(map[string]interface{}{"empty": nil}, "empty")
	require.NoError(t, err)
	assert.Nil(t, list)

	v, err := GetInterface(section, "a.d")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "y"}, v)
}
