package bench

// benchmarksConfig holds all parameters for each benchmark.
type benchmarksConfig struct {
	benchmarkSimpleConfig
	benchmarkManyConfig
	benchmarkLargeConfig
}

type benchmarkSimpleConfig struct {
	insertXUsers int
}

type benchmarkManyConfig struct {
	insertXUsers     int
	queryUsersYTimes int
}

type benchmarkLargeConfig struct {
	insertXUsers int
	insertYBytes int
}

func defaultConfig() benchmarksConfig {
	return benchmarksConfig{
		benchmarkSimpleConfig: benchmarkSimpleConfig{
			insertXUsers: 10_000,
		},

		benchmarkManyConfig: benchmarkManyConfig{
			insertXUsers:     1_000,
			queryUsersYTimes: 200,
		},

		benchmarkLargeConfig: benchmarkLargeConfig{
			insertXUsers: 2_000,
			insertYBytes: 10_000,
		},
	}
}
