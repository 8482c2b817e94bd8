package orders

import "strconv"

const TopicOrderWritten = "order.written"

// Partition key = order_id so every write of one order lands on one partition.
func PartitionKey(orderID int64) []byte { return []byte(strconv.FormatInt(orderID, 10)) }
