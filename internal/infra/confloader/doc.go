// Package confloader loads flowlog configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults, given as a map
//  2. A YAML file
//  3. FLOWLOG_* environment variables
//
// Environment names are matched against the keys already known from the
// defaults and the file, so FLOWLOG_LOGGER_RATE_LIMIT_PER_SECOND sets
// logger.rate_limit.per_second. Unknown names split on every underscore.
//
// Watcher reports changes to a config file through fsnotify so callers can
// reload without a restart.
package confloader
