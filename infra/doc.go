// Package infra contains technical adapters: the zerolog logger, the
// whenisgood fetcher, the MQTT plan announcer and the metrics exporters.
// These packages should depend only on the interfaces defined in the
// core packages.
package infra
