package metadata

// Key layout shared by every backend:
//
//	<ns>:requests:<id>  JSON progress document
//	<ns>:results:<id>   append-only list of JSON results
//	<ns>:workers:<id>   JSON heartbeat document

func requestKey(namespace, requestID string) string {
	return namespace + ":requests:" + requestID
}

func resultsKey(namespace, requestID string) string {
	return namespace + ":results:" + requestID
}

func workerKey(namespace, workerID string) string {
	return namespace + ":workers:" + workerID
}
