package xmetrics

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Totals 汇总的记录计数
type Totals struct {
	Seen     int64
	Admitted int64
	// ByBucket 每个桶的计数，非分区运行时键为空字符串
	ByBucket map[string]int64
}

// Collect 从 ManualReader 读取当前累计的记录计数
func Collect(ctx context.Context, reader *sdkmetric.ManualReader) (Totals, error) {
	if reader == nil {
		return Totals{}, ErrNilReader
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Totals{}, fmt.Errorf("xmetrics: collect: %w", err)
	}

	totals := Totals{ByBucket: make(map[string]int64)}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case MetricRecordsSeen:
					totals.Seen += dp.Value
				case MetricRecordsAdmitted:
					totals.Admitted += dp.Value
					bucket, _ := dp.Attributes.Value(attrBucket)
					totals.ByBucket[bucket.AsString()] += dp.Value
				}
			}
		}
	}
	return totals, nil
}
