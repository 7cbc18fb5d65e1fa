// Package factory provides a small generic registry used to build pluggable
// components, such as metrics sinks, from configuration. A component is
// described by a type string and a map of raw settings; the registered
// factory decodes the settings into a typed struct and returns the concrete
// implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	reg.Register("influx", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newInfluxSink(c.URL), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://localhost:8086"}})
package factory
