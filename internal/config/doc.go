// Package config provides configuration parsing for vnp projects.
//
// The configuration is stored in vnp.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-site",
//	  "pages": "app/pages",
//	  "hashRouting": true,
//	  "authRedirect": "/login",
//	  "defaultSEO": {
//	    "title": "VNP Forge",
//	    "description": "Ultra-fast AI Site Builder"
//	  },
//	  "renderDelay": "200ms",
//	  "readyTimeout": "5s",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vnp"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "vnp"
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
//	fmt.Println("Pages:", cfg.PagesPath())
package config
