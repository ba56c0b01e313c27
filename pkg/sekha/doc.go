// Package sekha is the Go client for the Sekha conversation-memory
// controller. It covers conversation storage, retrieval, semantic query,
// export assembly, and pruning suggestions over the controller's REST API.
//
// A Client is constructed once from an immutable ClientConfig and is safe
// for concurrent use:
//
//	client, err := sekha.NewClient(&sekha.ClientConfig{
//		BaseURL: "http://localhost:8080",
//		APIKey:  os.Getenv("SEKHA_API_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	conv, err := client.GetConversation(ctx, id)
//	if sekha.IsNotFound(err) {
//		// handle absence
//	}
//
// Every operation returns a *Error classified into a closed taxonomy
// (ErrNotFound, ErrValidation, ErrServer, ErrTransport, ErrSerialization);
// raw HTTP outcomes never escape the transport layer.
package sekha
