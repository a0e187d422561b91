/*
Package observability provides lifecycle hooks for monitoring a host container.

Metrics exports Prometheus counters, histograms and gauges per collection path;
LoggingHooks writes one structured record per dispatch. Both return domain.LifecycleHooks
and compose with LifecycleHooks.Merge.
*/
package observability
