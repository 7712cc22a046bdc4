// Package config provides configuration parsing for signalgraph.
//
// The configuration is stored in signalgraph.json. This package handles
// loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "localhost", "port": 8080},
//	  "log": {"level": "info"},
//	  "metrics": {"enabled": true, "namespace": "signalgraph", "path": "/metrics"},
//	  "tracing": {"enabled": false, "tracerName": "signalgraph"},
//	  "graph": {
//	    "houses": [{"id": 1}],
//	    "rooms": [
//	      {"id": 1, "houseId": 1, "length": 1, "width": 1, "height": 2}
//	    ],
//	    "windows": [
//	      {"id": 1, "roomId": 1, "width": 0.2, "height": 0.2}
//	    ]
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
