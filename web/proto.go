package web

import (
	"github.com/gogo/protobuf/proto"
)

const protobufContentType = "application/x-protobuf"

// TextListMessage is the protobuf form of a batch request:
//
//	message TextListMessage {
//	  repeated string texts = 1;
//	  optional int32 top_n = 2;
//	  optional bool shared_vocabulary = 3;
//	}
type TextListMessage struct {
	Texts            []string `protobuf:"bytes,1,rep,name=texts" json:"texts,omitempty"`
	TopN             *int32   `protobuf:"varint,2,opt,name=top_n,json=topN" json:"top_n,omitempty"`
	SharedVocabulary *bool    `protobuf:"varint,3,opt,name=shared_vocabulary,json=sharedVocabulary" json:"shared_vocabulary,omitempty"`
}

func (m *TextListMessage) Reset()         { *m = TextListMessage{} }
func (m *TextListMessage) String() string { return proto.CompactTextString(m) }
func (*TextListMessage) ProtoMessage()    {}

func decodeTextList(buf []byte) (*TextListRequest, error) {
	var msg TextListMessage
	if err := proto.Unmarshal(buf, &msg); err != nil {
		return nil, badRequest("invalid protobuf body: %v", err)
	}
	req := &TextListRequest{Texts: msg.Texts}
	if msg.TopN != nil {
		n := int(*msg.TopN)
		req.TopN = &n
	}
	if msg.SharedVocabulary != nil {
		req.SharedVocabulary = *msg.SharedVocabulary
	}
	return req, nil
}
