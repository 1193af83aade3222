package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"gcovcheck.dev/pkg/gcovcheck/internal/adapter"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "gcovcheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	srcDirFlagName    = "src-dir"
	toolchainFlagName = "toolchain"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	formatFlagName    = "format"
	diffFlagName      = "diff"
	iterationFlagName = "iteration"
	parallelFlagName  = "parallel"

	srcDirsConfigKey         = "scope.src_dirs"
	toolchainPrefixConfigKey = "gcov.toolchain_prefix"
	extraArgsConfigKey       = "gcov.extra_args"
	workDirConfigKey         = "gcov.work_dir"
	gcovTimeoutConfigKey     = "gcov.timeout"
	checkParallelConfigKey   = "check.parallel"
	checkFilesConfigKey      = "check.files"

	defaultGcovTimeout   = time.Minute
	defaultCheckParallel = 1

	envPrefix = "GCOVCHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".gcovcheck.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configReadErr holds a config file that exists but could not be read.
var configReadErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(srcDirsConfigKey, []string{})
	viper.SetDefault(toolchainPrefixConfigKey, "")
	viper.SetDefault(extraArgsConfigKey, "")
	viper.SetDefault(workDirConfigKey, "")
	viper.SetDefault(gcovTimeoutConfigKey, defaultGcovTimeout.String())
	viper.SetDefault(checkParallelConfigKey, defaultCheckParallel)
	viper.SetDefault(checkFilesConfigKey, []map[string]any{})

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configReadErr = readConfig()
}

// readConfig loads gcovcheck.yaml. A missing file is not an error.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", viper.ConfigFileUsed(), err)
}

// sourceDirs returns the configured scope directories.
func sourceDirs() []m.Path {
	return m.Paths(viper.GetStringSlice(srcDirsConfigKey))
}

// gcovOptions resolves the decoder settings from config, env and flags.
func gcovOptions() adapter.GcovOptions {
	return adapter.GcovOptions{
		ToolchainPrefix: viper.GetString(toolchainPrefixConfigKey),
		ExtraArgs:       viper.GetString(extraArgsConfigKey),
		WorkDir:         viper.GetString(workDirConfigKey),
		Timeout:         viper.GetDuration(gcovTimeoutConfigKey),
	}
}

// monitoredFiles decodes the check.files list.
func monitoredFiles() ([]m.MonitoredFile, error) {
	if configReadErr != nil {
		return nil, configReadErr
	}

	var files []m.MonitoredFile
	if err := viper.UnmarshalKey(checkFilesConfigKey, &files); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", checkFilesConfigKey, err)
	}

	for i, file := range files {
		if file.Source == "" || file.Data == "" || file.Reference == "" {
			return nil, fmt.Errorf("invalid %s[%d]: source, data and reference are required", checkFilesConfigKey, i)
		}
	}

	return files, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
